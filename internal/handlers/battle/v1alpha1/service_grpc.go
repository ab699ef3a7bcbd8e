package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully-qualified service names
const (
	BattleServiceName   = "rpgbattle.v1alpha1.BattleService"
	CreatureServiceName = "rpgbattle.v1alpha1.CreatureService"
)

// BattleServiceServer is the server API for BattleService
type BattleServiceServer interface {
	StartWildBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartTrainerBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveRound(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReplaceFainted(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// CreatureServiceServer is the server API for CreatureService
type CreatureServiceServer interface {
	CreateCreature(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCreature(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCreatures(context.Context, *structpb.Struct) (*structpb.Struct, error)
	HealParty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LearnMove(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// unary adapts a method expression of a server interface to a grpc.MethodDesc
func unary[S any](
	service, name string,
	call func(srv S, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// BattleServiceDesc is the grpc.ServiceDesc for BattleService
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: BattleServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(BattleServiceName, "StartWildBattle", BattleServiceServer.StartWildBattle),
		unary(BattleServiceName, "StartTrainerBattle", BattleServiceServer.StartTrainerBattle),
		unary(BattleServiceName, "ResolveRound", BattleServiceServer.ResolveRound),
		unary(BattleServiceName, "ReplaceFainted", BattleServiceServer.ReplaceFainted),
		unary(BattleServiceName, "Withdraw", BattleServiceServer.Withdraw),
		unary(BattleServiceName, "GetBattle", BattleServiceServer.GetBattle),
	},
	Streams: []grpc.StreamDesc{},
}

// CreatureServiceDesc is the grpc.ServiceDesc for CreatureService
var CreatureServiceDesc = grpc.ServiceDesc{
	ServiceName: CreatureServiceName,
	HandlerType: (*CreatureServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CreatureServiceName, "CreateCreature", CreatureServiceServer.CreateCreature),
		unary(CreatureServiceName, "GetCreature", CreatureServiceServer.GetCreature),
		unary(CreatureServiceName, "ListCreatures", CreatureServiceServer.ListCreatures),
		unary(CreatureServiceName, "HealParty", CreatureServiceServer.HealParty),
		unary(CreatureServiceName, "LearnMove", CreatureServiceServer.LearnMove),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterBattleServiceServer registers srv on s
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

// RegisterCreatureServiceServer registers srv on s
func RegisterCreatureServiceServer(s grpc.ServiceRegistrar, srv CreatureServiceServer) {
	s.RegisterService(&CreatureServiceDesc, srv)
}

// Client calls either service over a connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on cc
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes service/method with req and decodes the reply into resp. Both
// are message types of this package.
func (c *Client) Call(ctx context.Context, service, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := ToStruct(req)
	if err != nil {
		return err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...); err != nil {
		return err
	}
	return FromStruct(out, resp)
}
