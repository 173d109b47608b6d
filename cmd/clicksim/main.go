// clicksim plays the gateway side of the Click.uz protocol against a
// running instance: it signs and posts a prepare, then echoes the returned
// merchant_prepare_id back in a signed complete. Useful for exercising the
// deposit settlement path without gateway access.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/service/click"
)

const signTimeLayout = "2006-01-02 15:04:05"

func main() {
	var (
		baseURL   string
		serviceID string
		secret    string
		userID    string
		amount    string
		declined  bool
	)

	pflag.StringVarP(&baseURL, "base-url", "b", "http://localhost:8088", "Base URL of the running instance")
	pflag.StringVarP(&serviceID, "service-id", "s", "219042", "Click service id")
	pflag.StringVarP(&secret, "secret", "k", "ChangeMe", "Click secret key")
	pflag.StringVarP(&userID, "user-id", "u", "", "User id to deposit to (merchant_trans_id)")
	pflag.StringVarP(&amount, "amount", "a", "5000", "Deposit amount")
	pflag.BoolVarP(&declined, "declined", "d", false, "Report a gateway failure on complete")
	pflag.Parse()

	l := logger.New(true, true)

	if userID == "" {
		l.Fatal().Msg("--user-id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, baseURL, serviceID, secret, userID, amount, declined); err != nil {
		l.Fatal().Err(err).Msg("Simulation failed")
	}
}

func run(ctx context.Context, baseURL, serviceID, secret, userID, amount string, declined bool) error {
	clickTransID := strconv.FormatInt(rand.Int63n(1_000_000_000), 10)

	prepare := click.Payload{
		ClickTransID:    clickTransID,
		ServiceID:       serviceID,
		MerchantTransID: userID,
		Amount:          amount,
		Action:          click.ActionPrepare,
		Error:           "0",
		SignTime:        time.Now().Format(signTimeLayout),
	}
	prepare.SignString = click.Sign(secret, prepare)

	res, err := post(ctx, baseURL+"/api/click/prepare", prepare)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	log.Info().Interface("response", res).Msg("Prepare done")

	if res.Error != 0 {
		return fmt.Errorf("prepare rejected with code %d", res.Error)
	}

	complete := click.Payload{
		ClickTransID:      clickTransID,
		ServiceID:         serviceID,
		MerchantTransID:   userID,
		MerchantPrepareID: res.MerchantPrepareID,
		Amount:            amount,
		Action:            click.ActionComplete,
		Error:             "0",
		SignTime:          time.Now().Format(signTimeLayout),
	}
	if declined {
		complete.Error = "-5017"
		complete.ErrorNote = "Declined by gateway"
	}
	complete.SignString = click.Sign(secret, complete)

	res, err = post(ctx, baseURL+"/api/click/complete", complete)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	log.Info().Interface("response", res).Msg("Complete done")

	return nil
}

func post(ctx context.Context, endpoint string, p click.Payload) (*click.Response, error) {
	form := url.Values{
		"click_trans_id":      {p.ClickTransID},
		"service_id":          {p.ServiceID},
		"merchant_trans_id":   {p.MerchantTransID},
		"merchant_prepare_id": {p.MerchantPrepareID},
		"amount":              {p.Amount},
		"action":              {p.Action},
		"error":               {p.Error},
		"error_note":          {p.ErrorNote},
		"sign_time":           {p.SignTime},
		"sign_string":         {p.SignString},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	out := &click.Response{}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return nil, err
	}

	return out, nil
}
