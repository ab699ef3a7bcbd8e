package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	orchestrator "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	battlemock "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle/mock"
	creaturemock "github.com/KirkDiggler/rpg-battle/internal/orchestrators/creature/mock"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

func TestServicesOverGRPC(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBattle := battlemock.NewMockService(ctrl)

	battleHandler, err := v1alpha1.NewBattleHandler(&v1alpha1.BattleHandlerConfig{BattleService: mockBattle})
	require.NoError(t, err)
	creatureHandler, err := v1alpha1.NewCreatureHandler(&v1alpha1.CreatureHandlerConfig{
		CreatureService: creaturemock.NewMockService(ctrl),
	})
	require.NoError(t, err)

	var intercepted []string
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(
		func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			intercepted = append(intercepted, info.FullMethod)
			return handler(ctx, req)
		},
	))
	v1alpha1.RegisterBattleServiceServer(srv, battleHandler)
	v1alpha1.RegisterCreatureServiceServer(srv, creatureHandler)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := v1alpha1.NewClient(conn)
	ctx := context.Background()

	mockBattle.EXPECT().
		GetBattle(gomock.Any(), &orchestrator.GetBattleInput{BattleID: "battle-1"}).
		Return(&orchestrator.GetBattleOutput{Battle: &battlerepo.Record{ID: "battle-1", OwnerID: "trainer-red"}}, nil)

	var resp v1alpha1.BattleResponse
	err = client.Call(ctx, v1alpha1.BattleServiceName, "GetBattle", &v1alpha1.BattleIDRequest{BattleID: "battle-1"}, &resp)
	require.NoError(t, err)
	require.Equal(t, "trainer-red", resp.Battle.OwnerID)
	require.Equal(t, []string{"/rpgbattle.v1alpha1.BattleService/GetBattle"}, intercepted)

	mockBattle.EXPECT().
		Withdraw(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidAction("cannot withdraw while awaiting_actions"))

	err = client.Call(ctx, v1alpha1.BattleServiceName, "Withdraw", &v1alpha1.BattleIDRequest{BattleID: "battle-1"}, &resp)
	require.Error(t, err)
	require.True(t, errors.IsInvalidAction(errors.FromGRPCError(err)))
}
