package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexdcox/deso-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// decode <type> <hex>: print a transaction or metadata record as JSON.
func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <transaction|type> <hex>",
		Short: "Decode a hex encoded transaction or metadata record",
		Long: "Decode a whole transaction, or a metadata record named by its type\n" +
			"(for example nft_bid, DAO_COIN_LIMIT_ORDER or 18).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := decode(args[0], strings.TrimPrefix(strings.TrimSpace(args[1]), "0x"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func decode(kind, encoded string) (out string, err error) {
	var record any

	switch strings.ToLower(kind) {
	case "transaction", "txn", "tx":
		var txn *deso.Transaction
		if txn, err = deso.DecodeTransactionHex(encoded); err != nil {
			return
		}
		record = map[string]any{
			"type":        txn.Type().String(),
			"transaction": txn,
		}
	default:
		var t deso.TxnType
		if t, err = deso.ParseTxnType(kind); err != nil {
			return
		}
		var metadata deso.Variant
		if metadata, err = deso.NewMetadata(t); err != nil {
			return
		}
		var raw []byte
		if raw, err = hex.DecodeString(encoded); err != nil {
			err = errors.Wrap(deso.ErrInvalidFieldEncoding, err.Error())
			return
		}
		if err = deso.DecodeExact(metadata, raw); err != nil {
			return
		}
		record = map[string]any{
			"type":     t.String(),
			"metadata": metadata,
		}
	}

	jsn, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	out = string(jsn)
	return
}
