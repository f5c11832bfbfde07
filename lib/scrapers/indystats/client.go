package indystats

import (
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/TMCabrera/indycargo/lib/restyutil"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
)

// DefaultBaseUrl is the host serving the IndyStats service endpoints.
const DefaultBaseUrl = "https://www.indycar.com"

// id the season dropdown widget passes to the service; stable across
// seasons as far as anyone has observed.
const seasonDropdownId = "b856a4f1-e85c-4fac-8c36-fd58d962227a"

// Client is the narrow adapter over the IndyStats endpoints. The
// endpoint URLs and raw payload field names never leak out of this
// package: everything downstream works off Season/SessionDetails and
// RawRecord.
type Client struct {
	Http *resty.Client

	delay bool
}

type ClientOptions struct {
	// BaseUrl overrides DefaultBaseUrl, mainly for tests pointed at a
	// local httptest server.
	BaseUrl string
	// NoDelay disables the polite inter-request delay.
	NoDelay bool
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		Http:  client,
		delay: !opts.NoDelay,
	}
}

// politeDelay sleeps a jittered 150-400ms so bulk fetches over wide
// year ranges don't hammer the service.
func (c *Client) politeDelay() {
	if !c.delay {
		return
	}
	ms, err := random.IntRange(150, 400)
	if err != nil {
		ms = 200
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
