package transfermarkt

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/platform/metrics"
	"github.com/riskibarqy/football-analytics/internal/platform/resilience"
)

const (
	DefaultBaseURL = "https://www.transfermarkt.co.uk"
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) football-analytics"
	crestSelector  = "img.tiny_wappen"
	maxBodySize    = 4 << 20
)

var (
	errCrestMissing = crerr.New("crest image not found on profile page")
	errBadStatus    = crerr.New("unexpected profile page status")
)

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes club crest images from transfermarkt profile pages.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "football-analytics",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodySize,
		},
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger.Named("transfermarkt"),
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// CrestURL returns the large crest image URL for a club profile page, or ""
// when it cannot be resolved. Failures are logged, never returned.
func (c *Client) CrestURL(ctx context.Context, profileURL string) string {
	profileURL = strings.TrimSpace(profileURL)
	if profileURL == "" {
		metrics.CrestLookup(metrics.CrestMissing)
		return ""
	}

	var crest string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		page, err := c.fetch(ctx, profileURL)
		if err != nil {
			return err
		}
		crest, err = c.parseCrest(page)
		if crerr.Is(err, errCrestMissing) {
			return nil
		}
		return err
	})

	switch {
	case crerr.Is(err, resilience.ErrCircuitOpen):
		metrics.CrestLookup(metrics.CrestCircuitOpen)
		c.logger.WarnContext(ctx, "crest lookup skipped, circuit open", "profile_url", profileURL)
		return ""
	case err != nil:
		metrics.CrestLookup(metrics.CrestFailed)
		c.logger.WarnContext(ctx, "crest lookup failed", "profile_url", profileURL, "error", err)
		return ""
	case crest == "":
		metrics.CrestLookup(metrics.CrestMissing)
		c.logger.WarnContext(ctx, "crest not found on profile page", "profile_url", profileURL)
		return ""
	}

	metrics.CrestLookup(metrics.CrestFound)
	return crest
}

func (c *Client) fetch(ctx context.Context, profileURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(profileURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)
	req.Header.Set("Accept", "text/html")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Wrapf(err, "get %s", profileURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, crerr.Wrapf(errBadStatus, "get %s: status=%d", profileURL, code)
	}

	return append([]byte(nil), resp.Body()...), nil
}

// parseCrest finds the small crest image and maps it to the large variant.
func (c *Client) parseCrest(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", crerr.Wrap(err, "parse profile page")
	}

	src, ok := doc.Find(crestSelector).First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return "", errCrestMissing
	}

	return c.absolute(strings.Replace(src, "/head/", "/big/", 1))
}

func (c *Client) absolute(ref string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", crerr.Wrapf(err, "parse base url %q", c.baseURL)
	}
	target, err := url.Parse(ref)
	if err != nil {
		return "", crerr.Wrapf(err, "parse crest src %q", ref)
	}
	return base.ResolveReference(target).String(), nil
}
