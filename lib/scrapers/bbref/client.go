package bbref

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"time"

	"hoopsdb/lib/restyutil"
	"hoopsdb/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/bbref")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes clients constructed afterwards dump
// their raw request/response pairs to out.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

const DefaultBaseUrl = "https://www.basketball-reference.com"

// DefaultRequestDelay is the fixed wait before every page fetch.
// basketball-reference bans clients that crawl faster than this.
const DefaultRequestDelay = 3 * time.Second

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultRequestDelay
	RequestDelay time.Duration
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	delay   time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.RequestDelay == 0 {
		opts.RequestDelay = DefaultRequestDelay
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	if restyInstrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
	} else {
		telemetry.InstrumentResty(client, "scrapers/bbref/http")
	}

	return &Client{
		baseUrl: baseUrl,
		http:    client,
		delay:   opts.RequestDelay,
	}, nil
}

// PlayerPage fetches and parses the profile page for playerId. Every
// call waits the configured delay up front, there is no retry and no
// backoff, a failed fetch is the caller's problem.
func (c *Client) PlayerPage(ctx context.Context, playerId string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "PlayerPage")
	defer span.End()

	if playerId == "" {
		return nil, fmt.Errorf("empty player id")
	}

	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	pageUrl := fmt.Sprintf("/players/%s/%s.html", playerId[:1], playerId)
	slog.DebugContext(
		ctx, "fetching player page",
		"player", playerId,
		"url", c.baseUrl.String()+pageUrl,
	)

	res, err := c.http.R().
		SetContext(ctx).
		Get(pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("fetch player page: %w", err)
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("fetch player page: unexpected status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, fmt.Errorf("parse player page: %w", err)
	}
	return doc, nil
}

// Player fetches playerId's page and extracts their profile.
func (c *Client) Player(ctx context.Context, playerId string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Player")
	defer span.End()

	doc, err := c.PlayerPage(ctx, playerId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return Profile{}, err
	}
	return ExtractProfile(ctx, doc, playerId), nil
}
