package builtin

import (
	"context"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/ports"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// symbolAliases maps friendly asset names to upstream tickers. Lookup is
// case-insensitive; anything absent resolves to its upper-cased form.
var symbolAliases = map[string]string{
	"bitcoin":  "BTCUSDT",
	"btc":      "BTCUSDT",
	"ethereum": "ETHUSDT",
	"eth":      "ETHUSDT",
}

// ResolveSymbol maps a user-supplied asset name to the ticker the price feed
// understands.
func ResolveSymbol(input string) string {
	if ticker, ok := symbolAliases[strings.ToLower(input)]; ok {
		return ticker
	}
	return strings.ToUpper(input)
}

// GetPrice returns the get_price tool: the current quote for an asset,
// resolved through the alias table and fetched from the price feed.
func GetPrice(prices ports.PriceSource) domain.Descriptor {
	return domain.Descriptor{
		Name:        "get_price",
		Description: "Get the current price of a cryptocurrency",
		Params: schema.Schema{
			"symbol": {Type: schema.String(), Required: true, Description: "Asset name or ticker, e.g. bitcoin or ETHUSDT"},
		},
		ReadOnly:  true,
		OpenWorld: true,
		Handler: func(ctx context.Context, args map[string]any, id domain.Identity) (domain.Result, error) {
			var in struct {
				Symbol string `mapstructure:"symbol"`
			}
			if err := mapstructure.Decode(args, &in); err != nil {
				return domain.Result{}, err
			}
			symbol := ResolveSymbol(in.Symbol)
			price, err := prices.Quote(ctx, symbol)
			if err != nil {
				return domain.Result{}, domain.Upstream(err)
			}
			return domain.Textf("The current price of %s is %s", symbol, price), nil
		},
	}
}
