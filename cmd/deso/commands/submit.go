package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alexdcox/deso-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type specFromJSON func(raw []byte, defaults deso.Defaults) (*deso.TxnSpec, error)

func fromJSON[R any](construct func(*R, deso.Defaults) (*deso.TxnSpec, error)) specFromJSON {
	return func(raw []byte, defaults deso.Defaults) (spec *deso.TxnSpec, err error) {
		req := new(R)
		if err = json.Unmarshal(raw, req); err != nil {
			err = errors.Wrap(deso.ErrInvalidFieldEncoding, err.Error())
			return
		}
		return construct(req, defaults)
	}
}

var kinds = map[string]specFromJSON{
	"create-nft":                  fromJSON(deso.ConstructCreateNFT),
	"update-nft":                  fromJSON(deso.ConstructUpdateNFT),
	"create-nft-bid":              fromJSON(deso.ConstructNFTBid),
	"accept-nft-bid":              fromJSON(deso.ConstructAcceptNFTBid),
	"transfer-nft":                fromJSON(deso.ConstructTransferNFT),
	"accept-nft-transfer":         fromJSON(deso.ConstructAcceptNFTTransfer),
	"burn-nft":                    fromJSON(deso.ConstructBurnNFT),
	"create-access-group":         fromJSON(deso.ConstructCreateAccessGroup),
	"update-access-group":         fromJSON(deso.ConstructUpdateAccessGroup),
	"add-access-group-members":    fromJSON(deso.ConstructAddAccessGroupMembers),
	"remove-access-group-members": fromJSON(deso.ConstructRemoveAccessGroupMembers),
	"update-access-group-members": fromJSON(deso.ConstructUpdateAccessGroupMembers),
	"dao-coin":                    fromJSON(deso.ConstructDAOCoin),
	"transfer-dao-coin":           fromJSON(deso.ConstructTransferDAOCoin),
	"create-dao-coin-limit-order": fromJSON(deso.ConstructDAOCoinLimitOrder),
	"cancel-dao-coin-limit-order": fromJSON(deso.ConstructCancelDAOCoinLimitOrder),
	"authorize-derived-key":       fromJSON(deso.ConstructAuthorizeDerivedKey),
	"create-user-association":     fromJSON(deso.ConstructCreateUserAssociation),
	"delete-user-association":     fromJSON(deso.ConstructDeleteUserAssociation),
	"create-post-association":     fromJSON(deso.ConstructCreatePostAssociation),
	"delete-post-association":     fromJSON(deso.ConstructDeletePostAssociation),
	"send-dm-message":             fromJSON(deso.ConstructSendDMMessage),
	"update-dm-message":           fromJSON(deso.ConstructUpdateDMMessage),
	"send-group-chat-message":     fromJSON(deso.ConstructSendGroupChatMessage),
	"update-group-chat-message":   fromJSON(deso.ConstructUpdateGroupChatMessage),
}

func kindNames() (names []string) {
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// submit <kind> <request.json|->: construct, sign and broadcast.
func submitCmd() *cobra.Command {
	var broadcast bool

	cmd := &cobra.Command{
		Use:   "submit <kind> <request.json|->",
		Short: "Construct a transaction from a JSON request, sign it and submit it",
		Long:  "Kinds:\n  " + strings.Join(kindNames(), "\n  "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			build, ok := kinds[args[0]]
			if !ok {
				return errors.Errorf("unknown kind '%s'", args[0])
			}

			raw, err := readInput(cmd, args[1])
			if err != nil {
				return
			}

			client, err := newClient()
			if err != nil {
				return
			}
			defer client.Close()

			spec, err := build(raw, client.Defaults())
			if err != nil {
				return
			}

			options := &deso.SubmitOptions{}
			if cmd.Flags().Changed("broadcast") {
				options.Broadcast = &broadcast
			}

			ctx, cancel := interruptible(cmd.Context())
			defer cancel()

			result, err := client.Submit(ctx, spec, options)
			if err != nil {
				return
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "type:      %s\n", result.Type)
			fmt.Fprintf(out, "unsigned:  %s\n", result.UnsignedHex)
			if result.SignedHex != "" {
				fmt.Fprintf(out, "signed:    %s\n", result.SignedHex)
			}
			if result.TxnHashHex != "" {
				fmt.Fprintf(out, "txn hash:  %s\n", result.TxnHashHex)
			}
			return
		},
	}

	cmd.Flags().BoolVar(&broadcast, "broadcast", true, "sign and submit (default true in browser host mode, false in server host mode)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (raw []byte, err error) {
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		err = errors.WithStack(err)
	}
	return
}
