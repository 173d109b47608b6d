// Package steam talks to the trade-bot sidecar that holds the Steam session
// and moves item instances between accounts.
package steam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

type Service struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

func (s *Service) LoggerComponent() string {
	return "Steam.Service"
}

func NewService(apiURL string, opts ...ServiceOption) (*Service, error) {
	c := &Service{
		apiURL:     apiURL,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}

	for _, o := range opts {
		o(c)
	}

	c.logger = c.logger.With().Str("component", c.LoggerComponent()).Logger()

	// A flapping trade system must degrade to fast failures instead of
	// hanging settlement requests.
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "steam-trade",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
		},
	})

	return c, nil
}

type ServiceOption func(*Service)

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func WithAPIKey(key string) ServiceOption {
	return func(s *Service) {
		s.apiKey = key
	}
}

func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

// SendOffer dispatches a trade offer transferring the given asset instances
// to the partner account.
func (s *Service) SendOffer(ctx context.Context, in *SendOfferRequest, out *SendOfferResponse) error {
	l := s.logger.With().
		Str("method", "SendOffer").
		Str("partner", in.PartnerSteamID).
		Logger()
	ctx = l.WithContext(ctx)

	if err := s.genericCall(ctx, http.MethodPost, "/api/offers", in, out); err != nil {
		return err
	}

	l.Debug().Str("offer_id", out.OfferID).Msg("SendOffer success")

	return nil
}

// GetOffer polls the current state of a previously sent offer.
func (s *Service) GetOffer(ctx context.Context, in *GetOfferRequest, out *GetOfferResponse) error {
	l := s.logger.With().
		Str("method", "GetOffer").
		Str("offer_id", in.OfferID).
		Logger()
	ctx = l.WithContext(ctx)

	err := s.genericCall(ctx, http.MethodGet, fmt.Sprintf("/api/offers/%s", in.OfferID), nil, out)
	if err != nil {
		return err
	}

	l.Debug().Int("offer_state", int(out.State)).Msg("GetOffer success")

	return nil
}

// GetInventory lists the tradable assets currently held by the account.
func (s *Service) GetInventory(ctx context.Context, in *GetInventoryRequest, out *GetInventoryResponse) error {
	l := s.logger.With().
		Str("method", "GetInventory").
		Str("steam_id", in.SteamID).
		Logger()
	ctx = l.WithContext(ctx)

	return s.genericCall(ctx, http.MethodGet, fmt.Sprintf("/api/inventory/%s", in.SteamID), nil, out)
}

// HasAsset reports whether the account still holds the given asset instance.
func (s *Service) HasAsset(ctx context.Context, steamID, assetID string) (bool, error) {
	out := &GetInventoryResponse{}
	if err := s.GetInventory(ctx, &GetInventoryRequest{SteamID: steamID}, out); err != nil {
		return false, err
	}

	for _, a := range out.Assets {
		if a.AssetID == assetID {
			return true, nil
		}
	}

	return false, nil
}

type RemoteError struct {
	ResponseBody string
	StatusCode   int
}

func NewRemoteError(responseBody string, statusCode int) *RemoteError {
	return &RemoteError{ResponseBody: responseBody, StatusCode: statusCode}
}

func (e *RemoteError) Error() string {
	return e.ResponseBody
}

func (s *Service) genericCall(ctx context.Context, method, endpoint string, in interface{}, out interface{}) error {
	l := zerolog.Ctx(ctx).With().Str("http_method", method).Str("endpoint", endpoint).Logger()
	ctx = l.WithContext(ctx)

	body, err := s.breaker.Execute(func() (interface{}, error) {
		res, err := s.request(ctx, method, endpoint, in)
		if err != nil {
			l.Error().Err(err).Msg("Service request failed")
			return nil, errors.Wrap(err, "request")
		}
		defer func() {
			_ = res.Body.Close()
		}()

		if res.StatusCode >= 400 {
			resBody := readString(res.Body)
			l.Error().
				Int("http_status", res.StatusCode).
				Str("http_body", resBody).
				Msg("Service responded with error")
			return nil, NewRemoteError(resBody, res.StatusCode)
		}

		return readBytes(res.Body), nil
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return errors.Wrap(err, "body decode")
	}

	return nil
}

func (s *Service) request(ctx context.Context, method, endpoint string, bodyParams interface{}) (*http.Response, error) {
	fullURL := s.apiURL + endpoint
	l := zerolog.Ctx(ctx).With().Str("url", fullURL).Logger()

	var reqBody []byte
	if bodyParams != nil {
		var err error
		reqBody, err = json.Marshal(bodyParams)
		if err != nil {
			return nil, errors.Wrap(err, "json encode")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Add("Authorization", "Bearer "+s.apiKey)
	}

	l.Debug().Str("request_body", string(reqBody)).Msg("Doing request")

	res, err := s.httpClient.Do(req)
	if err != nil {
		l.Error().Err(err).Msg("Call failed")
		return nil, errors.Wrap(err, "do request")
	}

	return res, nil
}
