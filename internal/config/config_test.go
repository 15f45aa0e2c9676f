package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_Metric(t *testing.T) {
	base := func() Config {
		return Config{
			HTTP:     HTTPConfig{Port: 8080},
			Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		}
	}

	for _, m := range []string{"", "euclidean", "manhattan", "cosine"} {
		t.Run("metric="+m, func(t *testing.T) {
			cfg := base()
			cfg.Retrieval.Metric = m
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for metric %q: %v", m, err)
			}
		})
	}

	cfg := base()
	cfg.Retrieval.Metric = "chebyshev"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported metric")
	}
}

func TestValidate_NegativeParallelism(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8080},
		Database:  DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Retrieval: RetrievalConfig{RerankParallelism: -1},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative parallelism")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Retrieval.Metric != "euclidean" {
		t.Errorf("expected Metric=euclidean, got %q", cfg.Retrieval.Metric)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ANNEX_TEST_PASSWORD", "s3cret")

	in := []byte("password: ${ANNEX_TEST_PASSWORD}\nport: ${ANNEX_TEST_PORT:-8080}\n")
	out := string(expandEnvVars(in))

	want := "password: s3cret\nport: 8080\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
