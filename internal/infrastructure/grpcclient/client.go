package grpcclient

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	grpchandler "github.com/aquaticavenue/paynow-hub/internal/delivery/grpc"
)

type Client struct {
	conn *grpc.ClientConn
}

func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

type EncodeResult struct {
	Payload   string
	Reference string
	Amount    string
}

// EncodePayload asks a remote server to build a payload. amount is a decimal
// string; an empty reference lets the server generate one.
func (c *Client) EncodePayload(ctx context.Context, amount, reference string) (*EncodeResult, error) {
	in, err := structpb.NewStruct(map[string]any{
		"amount":    amount,
		"reference": reference,
	})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, grpchandler.EncodePayloadMethod, in, out); err != nil {
		return nil, err
	}

	fields := out.GetFields()
	return &EncodeResult{
		Payload:   fields["payload"].GetStringValue(),
		Reference: fields["reference"].GetStringValue(),
		Amount:    fields["amount"].GetStringValue(),
	}, nil
}

// DecodePayload returns the decoded fields of payload as strings.
func (c *Client) DecodePayload(ctx context.Context, payload string) (map[string]string, error) {
	in, err := structpb.NewStruct(map[string]any{"payload": payload})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, grpchandler.DecodePayloadMethod, in, out); err != nil {
		return nil, err
	}

	decoded := make(map[string]string, len(out.GetFields()))
	for k, v := range out.GetFields() {
		decoded[k] = v.GetStringValue()
	}
	return decoded, nil
}
