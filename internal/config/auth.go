package config

const (
	defaultSessionTTLHours = 72
	defaultBcryptCost      = 10
)

type AuthConfig struct {
	SessionTTL int64 `yaml:"session-ttl-hours"`
	Cost       int   `yaml:"bcrypt-cost"`
}

func (s *AuthConfig) SessionTTLHours() int64 {
	if s.SessionTTL <= 0 {
		return defaultSessionTTLHours
	}
	return s.SessionTTL
}

func (s *AuthConfig) BcryptCost() int {
	if s.Cost <= 0 {
		return defaultBcryptCost
	}
	return s.Cost
}
