// Package client provides commands that drive a running battle server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	apperrors "github.com/KirkDiggler/rpg-battle/internal/errors"
	battlev1alpha1 "github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	feedAddr   string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the battle server",
	Long:  `Client commands drive a running battle server with real gRPC requests and watch battles over the websocket feed.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().StringVar(&feedAddr, "feed", "ws://localhost:8081", "Websocket feed base URL")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(creatureCmd)
	ClientCmd.AddCommand(battleCmd)
	ClientCmd.AddCommand(watchCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// call sends one request to service/method and decodes the reply into resp
func call(service, method string, req, resp any) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := battlev1alpha1.NewClient(conn).Call(ctx, service, method, req, resp); err != nil {
		return describeError(method, err)
	}
	return nil
}

// describeError turns a status error back into the server's domain error so
// the message names the domain code
func describeError(method string, err error) error {
	err = apperrors.FromGRPCError(err)
	code := apperrors.CodeOf(err)
	msg := fmt.Sprintf("%s failed (%s): %s", method, code, apperrors.MessageOf(err))
	if code.Retryable() {
		msg += fmt.Sprintf(" (is the server running at %s?)", serverAddr)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// optionalInt returns the value of an int flag, or nil when it was not set
func optionalInt(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
