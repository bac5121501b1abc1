package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/INFURA/go-ethlibs/jsonrpc"
	"github.com/INFURA/go-ethlibs/node"
)

type RPC struct {
	node.Client
}

// NewRPC connects RPC client to the given URL.
func NewRPC(ctx context.Context, rawurl string) (*RPC, error) {
	client, err := node.NewClient(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return &RPC{client}, nil
}

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Method string
	Raw    string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Raw)
}

func (c *RPC) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}

	params, err := jsonrpc.MakeParams(args...)
	if err != nil {
		return err
	}
	request := jsonrpc.Request{
		ID:     jsonrpc.ID{Num: 1},
		Method: method,
		Params: params,
	}

	response, err := c.Request(ctx, &request)
	if err != nil {
		return err
	}

	if response.Error != nil {
		return &RPCError{Method: method, Raw: string(*response.Error)}
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(response.Result, result)
}

// IsRPCError reports whether err came back from the node rather than from the transport.
func IsRPCError(err error) bool {
	var e *RPCError
	return errors.As(err, &e)
}
