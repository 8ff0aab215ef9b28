package broker

import (
	"github.com/redis/go-redis/v9"
)

type Config struct {
	URI        string
	StreamName string `yaml:"stream_name"`
}

type PublisherConfig struct {
	Timeout int `yaml:"timeout_in_ms"`
}

// Client holds the redis connection progress events are streamed over.
type Client struct {
	redis  *redis.Client
	stream string
}

func NewClient(cfg Config) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URI)
	if err != nil {
		return nil, err
	}

	return &Client{
		redis:  redis.NewClient(opt),
		stream: cfg.StreamName,
	}, nil
}

func (c *Client) Close() error {
	return c.redis.Close()
}
