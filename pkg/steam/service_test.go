package steam_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinsbay/pkg/steam"
)

func TestSendOffer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/offers", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var in steam.SendOfferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "76561198000000001", in.PartnerSteamID)
		assert.Equal(t, []string{"10000001"}, in.AssetIDs)

		_ = json.NewEncoder(w).Encode(steam.SendOfferResponse{OfferID: "offer-77"})
	}))
	defer srv.Close()

	svc, err := steam.NewService(srv.URL, steam.WithAPIKey("test-key"))
	require.NoError(t, err)

	out := &steam.SendOfferResponse{}
	err = svc.SendOffer(context.Background(), &steam.SendOfferRequest{
		PartnerSteamID: "76561198000000001",
		TradeURL:       "https://steamcommunity.com/tradeoffer/new/?partner=1&token=abc",
		AssetIDs:       []string{"10000001"},
	}, out)
	require.NoError(t, err)
	assert.Equal(t, "offer-77", out.OfferID)
}

func TestGetOffer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/offers/offer-77", r.URL.Path)

		_ = json.NewEncoder(w).Encode(steam.GetOfferResponse{OfferID: "offer-77", State: steam.OfferStateAccepted})
	}))
	defer srv.Close()

	svc, err := steam.NewService(srv.URL)
	require.NoError(t, err)

	out := &steam.GetOfferResponse{}
	require.NoError(t, svc.GetOffer(context.Background(), &steam.GetOfferRequest{OfferID: "offer-77"}, out))
	assert.Equal(t, steam.OfferStateAccepted, out.State)
}

func TestHasAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/inventory/76561198000000001", r.URL.Path)

		_ = json.NewEncoder(w).Encode(steam.GetInventoryResponse{Assets: []steam.Asset{
			{AssetID: "10000001", MarketHashName: "AK-47 | Redline (Field-Tested)"},
			{AssetID: "10000002", MarketHashName: "AWP | Asiimov (Battle-Scarred)"},
		}})
	}))
	defer srv.Close()

	svc, err := steam.NewService(srv.URL)
	require.NoError(t, err)

	present, err := svc.HasAsset(context.Background(), "76561198000000001", "10000001")
	require.NoError(t, err)
	assert.True(t, present)

	present, err = svc.HasAsset(context.Background(), "76561198000000001", "99999999")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no session", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc, err := steam.NewService(srv.URL)
	require.NoError(t, err)

	out := &steam.GetOfferResponse{}
	err = svc.GetOffer(context.Background(), &steam.GetOfferRequest{OfferID: "offer-77"}, out)
	require.Error(t, err)

	remoteErr := &steam.RemoteError{}
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadGateway, remoteErr.StatusCode)
}

func TestOfferStateFailed(t *testing.T) {
	for _, s := range []steam.OfferState{
		steam.OfferStateDeclined,
		steam.OfferStateCanceled,
		steam.OfferStateExpired,
		steam.OfferStateInvalidItems,
	} {
		assert.True(t, s.Failed(), "state %d", s)
		assert.True(t, s.Terminal(), "state %d", s)
	}

	assert.False(t, steam.OfferStateActive.Failed())
	assert.False(t, steam.OfferStateActive.Terminal())
	assert.False(t, steam.OfferStateAccepted.Failed())
	assert.True(t, steam.OfferStateAccepted.Terminal())
}
