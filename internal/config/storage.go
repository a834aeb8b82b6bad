package config

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
	DriverMemory   = "memory"
)

type StorageConfig struct {
	StorageDriver string         `yaml:"driver"`
	PostgresConf  PostgresConfig `yaml:"postgres"`
	SqliteConf    SqliteConfig   `yaml:"sqlite"`
}

func (s *StorageConfig) Driver() string {
	return s.StorageDriver
}

func (s *StorageConfig) Postgres() *PostgresConfig {
	return &s.PostgresConf
}

func (s *StorageConfig) Sqlite() *SqliteConfig {
	return &s.SqliteConf
}
