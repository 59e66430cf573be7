package tools

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/opensvm/osvm-mcp/rpc"
)

// catalog returns every tool definition in listing order. This table is the
// single source of truth: tools/list serializes it and the dispatcher
// resolves against it, so a tool cannot exist without a handler or a
// handler without a schema.
func catalog() []Definition {
	return []Definition{
		// --- Transactions ---
		{
			Name:        "get_transaction",
			Description: "Get detailed information about a transaction by its signature.",
			InputSchema: objectSchema(map[string]Property{
				"signature": signatureProperty("Transaction signature to look up"),
			}, "signature"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				sig, rpcErr := requireSignature(args, "signature")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/transaction/"+url.PathEscape(sig))
			},
		},
		{
			Name:        "get_account_transactions",
			Description: "List recent transactions for an account address.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
				"limit":   limitProperty("Maximum number of transactions to return", 10, maxListLimit),
			}, "address"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				addr, rpcErr := requireAddress(args, "address")
				if rpcErr != nil {
					return nil, rpcErr
				}
				limit, rpcErr := optionalLimit(args, "limit", 10, maxListLimit)
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/account-transactions/"+url.PathEscape(addr)+limitQuery(limit))
			},
		},
		{
			Name:        "batch_transactions",
			Description: "Fetch up to 20 transactions in one call by their signatures.",
			InputSchema: objectSchema(map[string]Property{
				"signatures": {
					Type:        TypeArray,
					Description: "Transaction signatures to fetch",
					Items:       func() *Property { p := signatureProperty("Transaction signature"); return &p }(),
					MinItems:    intPtr(1),
					MaxItems:    intPtr(maxBatchSignatures),
				},
			}, "signatures"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				sigs, rpcErr := requireSignatures(args, "signatures", maxBatchSignatures)
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Post(ctx, "/batch-transactions", map[string]any{"signatures": sigs})
			},
		},
		{
			Name:        "analyze_transaction",
			Description: "Get a decoded, human-readable analysis of a transaction.",
			InputSchema: objectSchema(map[string]Property{
				"signature": signatureProperty("Transaction signature to analyze"),
			}, "signature"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				sig, rpcErr := requireSignature(args, "signature")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/analyze-transaction/"+url.PathEscape(sig))
			},
		},

		// --- Accounts ---
		{
			Name:        "get_account_stats",
			Description: "Get activity statistics for an account address.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
			}, "address"),
			Handler: addressGetHandler("/account-stats/"),
		},
		{
			Name:        "get_account_portfolio",
			Description: "Get the full portfolio of an account: native balance, tokens, and NFTs with valuations.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
			}, "address"),
			Handler: addressGetHandler("/account-portfolio/"),
		},
		{
			Name:        "get_solana_balance",
			Description: "Get the native SOL balance of an account with price, value, and 24h change.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
			}, "address"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				addr, rpcErr := requireAddress(args, "address")
				if rpcErr != nil {
					return nil, rpcErr
				}
				portfolio, err := gw.Get(ctx, "/account-portfolio/"+url.PathEscape(addr))
				if err != nil {
					return nil, err
				}
				return projectNativeBalance(portfolio)
			},
		},
		{
			Name:        "get_account_tokens",
			Description: "List token holdings for an account address.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
			}, "address"),
			Handler: addressGetHandler("/account-tokens/"),
		},
		{
			Name:        "get_account_nfts",
			Description: "List NFTs held by an account address.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
			}, "address"),
			Handler: addressGetHandler("/account-nfts/"),
		},
		{
			Name:        "get_account_transfers",
			Description: "List recent token transfers for an account address.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("Account address"),
				"limit":   limitProperty("Maximum number of transfers to return", 10, maxListLimit),
			}, "address"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				addr, rpcErr := requireAddress(args, "address")
				if rpcErr != nil {
					return nil, rpcErr
				}
				limit, rpcErr := optionalLimit(args, "limit", 10, maxListLimit)
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/account-transfers/"+url.PathEscape(addr)+limitQuery(limit))
			},
		},

		// --- Blocks ---
		{
			Name:        "get_block",
			Description: "Get block details by slot number.",
			InputSchema: objectSchema(map[string]Property{
				"slot": {Type: TypeInteger, Description: "Slot number of the block", Minimum: intPtr(0)},
			}, "slot"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				slot, rpcErr := requireSlot(args, "slot")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/block/"+strconv.Itoa(slot))
			},
		},
		{
			Name:        "get_recent_blocks",
			Description: "List the most recently produced blocks.",
			InputSchema: objectSchema(map[string]Property{
				"limit": limitProperty("Maximum number of blocks to return", 10, maxListLimit),
			}),
			Handler: limitGetHandler("/blocks", 10),
		},
		{
			Name:        "get_slot",
			Description: "Get the current slot of the ledger.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/slot"),
		},

		// --- Search ---
		{
			Name:        "search",
			Description: "Search accounts, transactions, tokens, and programs by free-text query.",
			InputSchema: objectSchema(map[string]Property{
				"query": {Type: TypeString, Description: "Search query: an address, signature, token symbol, or name"},
			}, "query"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				query, rpcErr := requireString(args, "query")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/search?q="+url.QueryEscape(query))
			},
		},

		// --- Analytics ---
		{
			Name:        "get_network_stats",
			Description: "Get current network statistics: TPS, slot height, epoch progress, and validator count.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/network-stats"),
		},
		{
			Name:        "get_validator_stats",
			Description: "Get aggregate validator statistics: stake distribution, commission, and uptime.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/validator-stats"),
		},
		{
			Name:        "get_market_overview",
			Description: "Get a market overview: SOL price, market cap, volume, and dominant tokens.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/market-overview"),
		},
		{
			Name:        "get_fee_stats",
			Description: "Get recent fee statistics including priority fee percentiles.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/fee-stats"),
		},

		// --- Tokens and NFTs ---
		{
			Name:        "get_token_info",
			Description: "Get metadata and on-chain details for a token by its mint address.",
			InputSchema: objectSchema(map[string]Property{
				"mint": addressProperty("Token mint address"),
			}, "mint"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				mint, rpcErr := requireAddress(args, "mint")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/token/"+url.PathEscape(mint))
			},
		},
		{
			Name:        "get_token_price",
			Description: "Get the current price and 24h change for a token by its mint address.",
			InputSchema: objectSchema(map[string]Property{
				"mint": addressProperty("Token mint address"),
			}, "mint"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				mint, rpcErr := requireAddress(args, "mint")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/token-price/"+url.PathEscape(mint))
			},
		},
		{
			Name:        "get_trending_tokens",
			Description: "List tokens trending by volume and activity.",
			InputSchema: objectSchema(map[string]Property{
				"limit": limitProperty("Maximum number of tokens to return", 10, maxListLimit),
			}),
			Handler: limitGetHandler("/trending-tokens", 10),
		},
		{
			Name:        "get_nft_collection",
			Description: "Get details for an NFT collection by its collection address.",
			InputSchema: objectSchema(map[string]Property{
				"address": addressProperty("NFT collection address"),
			}, "address"),
			Handler: addressGetHandler("/nft-collection/"),
		},
		{
			Name:        "get_trending_nft_collections",
			Description: "List NFT collections trending by volume.",
			InputSchema: objectSchema(map[string]Property{
				"limit": limitProperty("Maximum number of collections to return", 10, maxListLimit),
			}),
			Handler: limitGetHandler("/trending-nft-collections", 10),
		},

		// --- User management (JWT session required) ---
		{
			Name:            "get_user_profile",
			Description:     "Get the profile of the authenticated user.",
			InputSchema:     emptySchema(),
			RequiresSession: true,
			Handler:         plainGetHandler("/user/profile"),
		},
		{
			Name:        "get_user_history",
			Description: "Get the authenticated user's query history.",
			InputSchema: objectSchema(map[string]Property{
				"limit": limitProperty("Maximum number of history entries to return", 20, maxListLimit),
			}),
			RequiresSession: true,
			Handler:         limitGetHandler("/user/history", 20),
		},
		{
			Name:        "manage_api_keys",
			Description: "List, create, or delete API keys for the authenticated user.",
			InputSchema: objectSchema(map[string]Property{
				"action": {
					Type:        TypeString,
					Description: "Operation to perform",
					Enum:        []string{"list", "create", "delete"},
				},
				"name":  {Type: TypeString, Description: "Display name for a new key (create only)"},
				"keyId": {Type: TypeString, Description: "Identifier of the key to delete (delete only)"},
			}, "action"),
			RequiresSession: true,
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				action, rpcErr := requireEnum(args, "action", "list", "create", "delete")
				if rpcErr != nil {
					return nil, rpcErr
				}
				switch action {
				case "list":
					return gw.Get(ctx, "/user/api-keys")
				case "create":
					name, rpcErr := optionalString(args, "name")
					if rpcErr != nil {
						return nil, rpcErr
					}
					return gw.Post(ctx, "/user/api-keys", map[string]any{"name": name})
				default: // delete
					keyID, rpcErr := requireString(args, "keyId")
					if rpcErr != nil {
						return nil, rpcErr
					}
					return gw.Delete(ctx, "/user/api-keys/"+url.PathEscape(keyID))
				}
			},
		},

		// --- Monetization ---
		{
			Name:        "get_pricing",
			Description: "Get API pricing tiers and per-call costs.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/pricing"),
		},
		{
			Name:        "get_usage_stats",
			Description: "Get API usage statistics for the current credential.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/usage-stats"),
		},

		// --- Infrastructure ---
		{
			Name:        "get_api_health",
			Description: "Check backend API health and component status.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/health"),
		},
		{
			Name:        "solana_rpc_call",
			Description: "Proxy a raw Solana JSON-RPC method call through the backend.",
			InputSchema: objectSchema(map[string]Property{
				"method": {Type: TypeString, Description: "Solana RPC method name, e.g. getSlot"},
				"params": {Type: TypeArray, Description: "Positional RPC parameters", Items: &Property{Type: "string"}},
			}, "method"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				method, rpcErr := requireString(args, "method")
				if rpcErr != nil {
					return nil, rpcErr
				}
				params := []any{}
				if raw, present := args["params"]; present {
					typed, ok := raw.([]any)
					if !ok {
						return nil, rpc.InvalidParamsf("parameter %q must be an array of positional RPC parameters", "params")
					}
					params = typed
				}
				envelope := map[string]any{
					"jsonrpc": "2.0",
					"id":      time.Now().UnixMilli(),
					"method":  method,
					"params":  params,
				}
				return gw.Post(ctx, "/solana-rpc", envelope)
			},
		},

		// --- Program registry ---
		{
			Name:        "list_programs",
			Description: "List well-known programs from the program registry.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/program-registry"),
		},
		{
			Name:        "get_program_info",
			Description: "Get registry details for a program by its program ID.",
			InputSchema: objectSchema(map[string]Property{
				"programId": addressProperty("Program ID"),
			}, "programId"),
			Handler: func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
				programID, rpcErr := requireAddress(args, "programId")
				if rpcErr != nil {
					return nil, rpcErr
				}
				return gw.Get(ctx, "/program-registry/"+url.PathEscape(programID))
			},
		},

		// --- Utility ---
		{
			Name:        "get_epoch_info",
			Description: "Get current epoch number, progress, and remaining slots.",
			InputSchema: emptySchema(),
			Handler:     plainGetHandler("/epoch"),
		},
	}
}

func addressGetHandler(prefix string) HandlerFunc {
	return func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
		addr, rpcErr := requireAddress(args, "address")
		if rpcErr != nil {
			return nil, rpcErr
		}
		return gw.Get(ctx, prefix+url.PathEscape(addr))
	}
}

func plainGetHandler(path string) HandlerFunc {
	return func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
		return gw.Get(ctx, path)
	}
}

func limitGetHandler(path string, def int) HandlerFunc {
	return func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error) {
		limit, rpcErr := optionalLimit(args, "limit", def, maxListLimit)
		if rpcErr != nil {
			return nil, rpcErr
		}
		return gw.Get(ctx, path+limitQuery(limit))
	}
}
