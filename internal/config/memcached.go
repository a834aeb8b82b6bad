package config

type MemcachedConfig struct {
	NodeHosts  []string `yaml:"hosts"`
	SummaryTTL int32    `yaml:"summary-ttl-seconds"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

func (s *MemcachedConfig) SummaryTTLSeconds() int32 {
	return s.SummaryTTL
}
