package steam

// OfferState mirrors the trade system's ETradeOfferState values.
type OfferState int

const (
	OfferStateInvalid                  OfferState = 1
	OfferStateActive                   OfferState = 2
	OfferStateAccepted                 OfferState = 3
	OfferStateCountered                OfferState = 4
	OfferStateExpired                  OfferState = 5
	OfferStateCanceled                 OfferState = 6
	OfferStateDeclined                 OfferState = 7
	OfferStateInvalidItems             OfferState = 8
	OfferStateCreatedNeedsConfirmation OfferState = 9
	OfferStateCanceledBySecondFactor   OfferState = 10
	OfferStateInEscrow                 OfferState = 11
)

// Failed reports a terminal outcome that voids the transfer.
func (s OfferState) Failed() bool {
	switch s {
	case OfferStateDeclined, OfferStateCanceled, OfferStateExpired, OfferStateInvalidItems:
		return true
	}
	return false
}

// Terminal reports whether the offer can still change state.
func (s OfferState) Terminal() bool {
	return s == OfferStateAccepted || s.Failed()
}

type SendOfferRequest struct {
	PartnerSteamID string   `json:"partner_steam_id"`
	TradeURL       string   `json:"trade_url"`
	AssetIDs       []string `json:"asset_ids"`
}

type SendOfferResponse struct {
	OfferID string `json:"offer_id"`
}

type GetOfferRequest struct {
	OfferID string `json:"offer_id"`
}

type GetOfferResponse struct {
	OfferID string     `json:"offer_id"`
	State   OfferState `json:"state"`
}

type GetInventoryRequest struct {
	SteamID string `json:"steam_id"`
}

type GetInventoryResponse struct {
	Assets []Asset `json:"assets"`
}

type Asset struct {
	AssetID        string `json:"asset_id"`
	MarketHashName string `json:"market_hash_name"`
}
