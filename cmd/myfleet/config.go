package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myfleet/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath          = "CONFIG_PATH"
	envManagerPort         = "MANAGER_PORT"
	envWorkerPort          = "WORKER_PORT"
	envRedisAddr           = "REDIS_ADDR"
	envProbeTimeoutMs      = "PROBE_TIMEOUT_MS"
	envScanConcurrency     = "SCAN_CONCURRENCY"
	envMaxScanHosts        = "MAX_SCAN_HOSTS"
	envDispatchTimeoutMs   = "DISPATCH_TIMEOUT_MS"
	envDispatchConcurrency = "DISPATCH_CONCURRENCY"
	envHeartbeatIntervalMs = "HEARTBEAT_INTERVAL_MS"
	envWorkerTTLMs         = "WORKER_TTL_MS"
	envExtraRoles          = "EXTRA_ROLES"
)

// Defaults.
const (
	defaultManagerPort         = 9255
	defaultWorkerPort          = 9393
	defaultProbeTimeoutMs      = 1000
	defaultScanConcurrency     = 256
	defaultMaxScanHosts        = 65534
	defaultDispatchTimeoutMs   = 5000
	defaultHeartbeatIntervalMs = 10000
)

// Config holds the node configuration loaded by LoadConfig from the optional YAML file at
// CONFIG_PATH and environment variables. Environment values win over the file.
type Config struct {
	ManagerPort         int
	WorkerPort          int
	RedisAddr           string
	ProbeTimeout        time.Duration
	ScanConcurrency     int
	MaxScanHosts        uint64
	DispatchTimeout     time.Duration
	DispatchConcurrency int
	HeartbeatInterval   time.Duration
	WorkerTTLMs         int
	Roles               []domain.RoleTag
}

// yamlConfig is the YAML file layout. Absent keys keep their defaults.
type yamlConfig struct {
	ManagerPort         *int     `yaml:"manager_port"`
	WorkerPort          *int     `yaml:"worker_port"`
	RedisAddr           *string  `yaml:"redis_addr"`
	ProbeTimeoutMs      *int     `yaml:"probe_timeout_ms"`
	ScanConcurrency     *int     `yaml:"scan_concurrency"`
	MaxScanHosts        *uint64  `yaml:"max_scan_hosts"`
	DispatchTimeoutMs   *int     `yaml:"dispatch_timeout_ms"`
	DispatchConcurrency *int     `yaml:"dispatch_concurrency"`
	HeartbeatIntervalMs *int     `yaml:"heartbeat_interval_ms"`
	WorkerTTLMs         *int     `yaml:"worker_ttl_ms"`
	Roles               []string `yaml:"roles"`
}

// settings is the flat, millisecond-based view both sources write into before validation.
type settings struct {
	managerPort         int
	workerPort          int
	redisAddr           string
	probeTimeoutMs      int
	scanConcurrency     int
	maxScanHosts        uint64
	dispatchTimeoutMs   int
	dispatchConcurrency int
	heartbeatIntervalMs int
	workerTTLMs         int
	extraRoles          []string
}

func defaultSettings() settings {
	return settings{
		managerPort:         defaultManagerPort,
		workerPort:          defaultWorkerPort,
		probeTimeoutMs:      defaultProbeTimeoutMs,
		scanConcurrency:     defaultScanConcurrency,
		maxScanHosts:        defaultMaxScanHosts,
		dispatchTimeoutMs:   defaultDispatchTimeoutMs,
		heartbeatIntervalMs: defaultHeartbeatIntervalMs,
	}
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *settings) applyYAML(y *yamlConfig) {
	setIf(&s.managerPort, y.ManagerPort)
	setIf(&s.workerPort, y.WorkerPort)
	setIf(&s.redisAddr, y.RedisAddr)
	setIf(&s.probeTimeoutMs, y.ProbeTimeoutMs)
	setIf(&s.scanConcurrency, y.ScanConcurrency)
	setIf(&s.maxScanHosts, y.MaxScanHosts)
	setIf(&s.dispatchTimeoutMs, y.DispatchTimeoutMs)
	setIf(&s.dispatchConcurrency, y.DispatchConcurrency)
	setIf(&s.heartbeatIntervalMs, y.HeartbeatIntervalMs)
	setIf(&s.workerTTLMs, y.WorkerTTLMs)
	if len(y.Roles) > 0 {
		s.extraRoles = y.Roles
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *settings) applyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{envManagerPort, &s.managerPort},
		{envWorkerPort, &s.workerPort},
		{envProbeTimeoutMs, &s.probeTimeoutMs},
		{envScanConcurrency, &s.scanConcurrency},
		{envDispatchTimeoutMs, &s.dispatchTimeoutMs},
		{envDispatchConcurrency, &s.dispatchConcurrency},
		{envHeartbeatIntervalMs, &s.heartbeatIntervalMs},
		{envWorkerTTLMs, &s.workerTTLMs},
	}
	for _, e := range ints {
		raw := strings.TrimSpace(os.Getenv(e.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", e.name, raw)
		}
		*e.dst = v
	}

	if raw := strings.TrimSpace(os.Getenv(envMaxScanHosts)); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be a non-negative integer, got %q", envMaxScanHosts, raw)
		}
		s.maxScanHosts = v
	}
	if raw, ok := os.LookupEnv(envRedisAddr); ok {
		s.redisAddr = strings.TrimSpace(raw)
	}
	if raw := strings.TrimSpace(os.Getenv(envExtraRoles)); raw != "" {
		s.extraRoles = strings.Split(raw, ",")
	}
	return nil
}

func (s settings) validate() error {
	for _, p := range []struct {
		name string
		v    int
	}{{envManagerPort, s.managerPort}, {envWorkerPort, s.workerPort}} {
		if p.v <= 0 || p.v > 65535 {
			return fmt.Errorf("%s must be 1-65535, got %d", p.name, p.v)
		}
	}
	if s.managerPort == s.workerPort {
		return fmt.Errorf("%s and %s must differ, both are %d", envManagerPort, envWorkerPort, s.managerPort)
	}
	for _, p := range []struct {
		name string
		v    int
	}{{envProbeTimeoutMs, s.probeTimeoutMs}, {envDispatchTimeoutMs, s.dispatchTimeoutMs}, {envHeartbeatIntervalMs, s.heartbeatIntervalMs}} {
		if p.v <= 0 || p.v > domain.MaxTimeoutMs {
			return fmt.Errorf("%s must be 1-%d (ms), got %d", p.name, domain.MaxTimeoutMs, p.v)
		}
	}
	for _, p := range []struct {
		name string
		v    int
	}{{envScanConcurrency, s.scanConcurrency}, {envDispatchConcurrency, s.dispatchConcurrency}, {envWorkerTTLMs, s.workerTTLMs}} {
		if p.v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", p.name, p.v)
		}
	}
	if s.redisAddr != "" && !strings.HasPrefix(s.redisAddr, "redis://") && !strings.HasPrefix(s.redisAddr, "rediss://") {
		return fmt.Errorf("%s must be a redis:// URL, got %q", envRedisAddr, s.redisAddr)
	}
	return nil
}

// roles returns the built-in tags plus the configured extra ones, without duplicates.
func (s settings) roles() []domain.RoleTag {
	out := append([]domain.RoleTag{}, domain.DefaultRoles...)
	for _, r := range s.extraRoles {
		tag := domain.RoleTag(strings.TrimSpace(r))
		if tag == "" {
			continue
		}
		if _, known := domain.MatchRole(string(tag), out); known {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// LoadConfig builds the node configuration: defaults, then the YAML file at CONFIG_PATH when
// set, then environment variables, then validation.
//
// Returns: (*Config, nil) on success; (nil, error) on an unreadable or malformed file, a
// non-numeric variable, an out-of-range port, equal ports, a non-positive timeout or interval,
// a negative concurrency or TTL, or a redis address that is not a redis:// URL.
func LoadConfig() (*Config, error) {
	s := defaultSettings()

	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return nil, err
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		s.applyYAML(raw)
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return &Config{
		ManagerPort:         s.managerPort,
		WorkerPort:          s.workerPort,
		RedisAddr:           s.redisAddr,
		ProbeTimeout:        time.Duration(s.probeTimeoutMs) * time.Millisecond,
		ScanConcurrency:     s.scanConcurrency,
		MaxScanHosts:        s.maxScanHosts,
		DispatchTimeout:     time.Duration(s.dispatchTimeoutMs) * time.Millisecond,
		DispatchConcurrency: s.dispatchConcurrency,
		HeartbeatInterval:   time.Duration(s.heartbeatIntervalMs) * time.Millisecond,
		WorkerTTLMs:         s.workerTTLMs,
		Roles:               s.roles(),
	}, nil
}
