package annex

import "testing"

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_UnsupportedMetric(t *testing.T) {
	_, err := New(WithRedis("localhost:6379"), WithMetric("hamming"))
	if err == nil {
		t.Fatal("expected error for unsupported metric")
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithRedis("a:1", "b:2"),
		WithPassword("secret"),
		WithMetric("cosine"),
		WithRerankParallelism(4),
	} {
		o(cfg)
	}

	if len(cfg.addrs) != 2 || cfg.addrs[0] != "a:1" {
		t.Errorf("addrs = %v", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q", cfg.password)
	}
	if cfg.metric != "cosine" {
		t.Errorf("metric = %q", cfg.metric)
	}
	if cfg.rerankParallelism != 4 {
		t.Errorf("rerankParallelism = %d", cfg.rerankParallelism)
	}
}
