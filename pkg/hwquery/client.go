package hwquery

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/metalkit/netrecon/pkg/config"
	"github.com/metalkit/netrecon/pkg/defaults"
	"github.com/metalkit/netrecon/pkg/nicview"
	log "github.com/sirupsen/logrus"
)

// Client queries a hardware-management endpoint over HTTP. Retry and timeout
// policy live here, not in the core.
type Client struct {
	endpoint string
	resty    *resty.Client
}

// NewClient builds a client for the configured endpoint.
func NewClient(cfg config.HardwareConfig) *Client {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = defaults.DefaultHardwareTimeout
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaults.DefaultHardwareRetries
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries)
	if cfg.Username != "" {
		client.SetBasicAuth(cfg.Username, cfg.Password)
	}
	if cfg.Insecure {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return &Client{endpoint: cfg.Endpoint, resty: client}
}

// NicView fetches the flat raw port-record sequence.
func (c *Client) NicView(ctx context.Context) ([]nicview.PortRecord, error) {
	resp, err := c.resty.R().SetContext(ctx).Get(c.endpoint + "/nicview")
	if err != nil {
		return nil, fmt.Errorf("nic view query to %s failed: %w", c.endpoint, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("nic view query to %s failed: %s", c.endpoint, resp.Status())
	}
	d, err := parseDump(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("cannot decode nic view response: %w", err)
	}
	log.Debugf("fetched %d nic view records from %s", len(d.NicView), c.endpoint)
	return d.NicView, nil
}

// BIOSEnumeration fetches the BIOS enumeration record set.
func (c *Client) BIOSEnumeration(ctx context.Context) (nicview.BIOSInfo, error) {
	resp, err := c.resty.R().SetContext(ctx).
		SetResult(nicview.BIOSInfo{}).
		Get(c.endpoint + "/biosenumeration")
	if err != nil {
		return nil, fmt.Errorf("bios enumeration query to %s failed: %w", c.endpoint, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("bios enumeration query to %s failed: %s", c.endpoint, resp.Status())
	}
	info, ok := resp.Result().(*nicview.BIOSInfo)
	if !ok || info == nil {
		return nicview.BIOSInfo{}, nil
	}
	return *info, nil
}
