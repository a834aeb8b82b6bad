package config

type ServerConfig struct {
	HTTPPort int `yaml:"port"`
}

func (s *ServerConfig) Port() int {
	return s.HTTPPort
}
