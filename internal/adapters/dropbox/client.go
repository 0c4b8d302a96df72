package dropbox

import (
	"log/slog"
	"net/http"
	"platodropbox/internal/adapters/util"
	"platodropbox/internal/core/domain/ports"
	"strings"
	"time"
)

// ListLimit caps a listing. Only the first page is fetched; larger folders are truncated.
const ListLimit = 1000

var _ ports.RemoteStore = (*Client)(nil)

// Client talks to the Dropbox HTTP API.
type Client struct {
	tokenURL   string
	apiURL     string
	contentURL string
	client     *http.Client
	logger     *slog.Logger
}

type Options struct {
	TokenURL       string
	APIBaseURL     string
	ContentBaseURL string
	UserAgent      string
	Timeout        time.Duration
	LogLevel       string
	Logger         *slog.Logger
}

func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		tokenURL:   opts.TokenURL,
		apiURL:     strings.TrimRight(opts.APIBaseURL, "/"),
		contentURL: strings.TrimRight(opts.ContentBaseURL, "/"),
		client: &http.Client{
			Transport: &util.UserAgentTransport{
				UserAgent: opts.UserAgent,
				Base: &util.LoggingTransport{
					LogLevel: opts.LogLevel,
					Logger:   logger,
				},
			},
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}
