package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "photobooth"
	serviceName       = "photobooth.effect.v1.EffectPlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodListEffects = "/" + serviceName + "/ListEffects"
	methodApply       = "/" + serviceName + "/Apply"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "PHOTOBOOTH_PLUGIN",
	MagicCookieValue: "photobooth",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type EffectDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListEffectsResponse struct {
	Effects []EffectDescriptor `json:"effects"`
}

// Image payloads are JPEG bytes; the JSON codec base64-encodes them on
// the wire, which is acceptable for one page per print.
type ApplyRequest struct {
	EffectID  string `json:"effect_id"`
	ImageJPEG []byte `json:"image_jpeg"`
}

type ApplyResponse struct {
	ImageJPEG []byte `json:"image_jpeg"`
}

type EffectPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListEffects(ctx context.Context, in *Empty) (*ListEffectsResponse, error)
	Apply(ctx context.Context, in *ApplyRequest) (*ApplyResponse, error)
}

type EffectPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListEffects(ctx context.Context) (*ListEffectsResponse, error)
	Apply(ctx context.Context, in *ApplyRequest) (*ApplyResponse, error)
}

type effectPluginClient struct {
	conn *grpc.ClientConn
}

func NewEffectPluginClient(conn *grpc.ClientConn) EffectPluginClient {
	return &effectPluginClient{conn: conn}
}

func (c *effectPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *effectPluginClient) ListEffects(ctx context.Context) (*ListEffectsResponse, error) {
	out := &ListEffectsResponse{}
	if err := c.conn.Invoke(ctx, methodListEffects, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *effectPluginClient) Apply(ctx context.Context, in *ApplyRequest) (*ApplyResponse, error) {
	out := &ApplyResponse{}
	if err := c.conn.Invoke(ctx, methodApply, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEffectPluginServer(server grpc.ServiceRegistrar, impl EffectPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EffectPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListEffects",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListEffects(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListEffects}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListEffects(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Apply",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ApplyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Apply(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodApply}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ApplyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Apply(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/effect-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EffectPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEffectPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEffectPluginClient(conn), nil
}

func PluginMap(impl EffectPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
