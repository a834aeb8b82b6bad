package config

type SqliteConfig struct {
	FilePath string `yaml:"path"`
}

func (s *SqliteConfig) Path() string {
	return s.FilePath
}
