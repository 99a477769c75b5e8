package config

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8001,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "elwataneya_test",
			User:     "test_user",
			Password: "test_password",
		},
		JWT: JWTConfig{
			Secret:        "test-secret",
			RefreshSecret: "test-refresh-secret",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
	}
}
