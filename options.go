package annex

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs             []string
	password          string
	metric            string
	rerankParallelism int
}

// WithRedis sets the Redis/Valkey addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithMetric selects the exact distance metric used for re-ranking:
// "euclidean" (default), "manhattan", or "cosine".
func WithMetric(name string) Option {
	return func(c *clientConfig) {
		c.metric = name
	}
}

// WithRerankParallelism bounds the re-ranking worker group.
// Zero keeps the default (GOMAXPROCS).
func WithRerankParallelism(n int) Option {
	return func(c *clientConfig) {
		c.rerankParallelism = n
	}
}
