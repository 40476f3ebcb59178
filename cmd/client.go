package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"polka/handler/auth"
	"polka/pkg/resthttp"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

// apiFlags flags of commands talking to a running polka server
func apiFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().String("api", "http://127.0.0.1:9000", "polka api server")
		c.Flags().String("key", "", "private key in hex signing the request")
	}
}

// callAPI send a request to the polka api, signed when --key is set, and
// print the data of the response
func callAPI(cmd *cobra.Command, method, path string, query map[string]string, body interface{}) error {
	ctx := cmd.Context()
	req := resthttp.Request(ctx).SetQueryParams(query)

	var data []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		data = b
		req.SetBody(data)
	}

	if keyHex, _ := cmd.Flags().GetString("key"); keyHex != "" {
		key, err := crypto.HexToECDSA(trimHex(keyHex))
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}

		headers, err := auth.Sign(key, method, path, time.Now(), data)
		if err != nil {
			return err
		}

		for k := range headers {
			req.SetHeader(k, headers.Get(k))
		}
	}

	api, _ := cmd.Flags().GetString("api")
	resp, err := req.Execute(method, strings.TrimSuffix(api, "/")+path)
	if err != nil {
		return err
	}

	var out struct {
		Data json.RawMessage `json:"data"`
	}

	if err := resthttp.ParseResponse(resp, &out); err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out.Data, "", "  "); err != nil {
		return err
	}

	cmd.Println(pretty.String())
	return nil
}
