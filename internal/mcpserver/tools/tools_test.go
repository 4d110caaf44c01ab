package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/azure"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/cache"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/safety"
	"go.uber.org/zap"
)

func testDeps(cfg config.Config) Dependencies {
	return Dependencies{
		Logger:     zap.NewNop(),
		Guardrails: safety.NewGuardrails(cfg),
		Config:     cfg,
		Cache:      cache.New(),
	}
}

func TestPing(t *testing.T) {
	_, out, err := Ping(context.Background(), testDeps(config.Config{}), PingInput{})
	if err != nil || out.Pong != "pong" {
		t.Fatalf("expected pong, got %q err %v", out.Pong, err)
	}
	_, out, _ = Ping(context.Background(), testDeps(config.Config{}), PingInput{Message: "hello"})
	if out.Pong != "hello" {
		t.Fatalf("expected echo, got %q", out.Pong)
	}
}

func TestQueryDataRejectsEmptyAndWrites(t *testing.T) {
	deps := testDeps(config.Config{Database: "postgres", MaxRows: 10})

	res, _, err := QueryData(context.Background(), deps, QueryDataInput{})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected error result for empty sql, got %v err %v", res, err)
	}

	res, _, err = QueryData(context.Background(), deps, QueryDataInput{SQL: "DELETE FROM t"})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected error result for write statement, got %v err %v", res, err)
	}
}

func TestWriteToolsBlockedInReadOnly(t *testing.T) {
	deps := testDeps(config.Config{Database: "postgres", ReadOnly: true})
	res, _, err := CreateTable(context.Background(), deps, ExecInput{SQL: "CREATE TABLE t (id INT)"})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected create_table blocked, got %v err %v", res, err)
	}
	res, _, err = DropTable(context.Background(), deps, ExecInput{SQL: "DROP TABLE t"})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected drop_table blocked, got %v err %v", res, err)
	}
	res, _, err = UpdateValues(context.Background(), deps, ExecInput{SQL: "UPDATE t SET a=1"})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected update_values blocked, got %v err %v", res, err)
	}
}

type fakeMgmt struct {
	cfg   *azure.ServerConfig
	param *azure.Parameter
	err   error
}

func (f *fakeMgmt) GetServerConfig(ctx context.Context) (*azure.ServerConfig, error) {
	return f.cfg, f.err
}

func (f *fakeMgmt) GetServerParameter(ctx context.Context, name string) (*azure.Parameter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.param, nil
}

func TestGetServerConfigRequiresEntraID(t *testing.T) {
	deps := testDeps(config.Config{})
	res, _, err := GetServerConfig(context.Background(), deps)
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected NOT_SUPPORTED without EntraID, got %v err %v", res, err)
	}
}

func TestGetServerConfig(t *testing.T) {
	deps := testDeps(config.Config{UseAAD: true})
	deps.Mgmt = &fakeMgmt{cfg: &azure.ServerConfig{
		Name:     "test-server",
		Location: "eastus",
		Version:  "16",
		SKU:      "Standard_D2s_v3",
		StorageProfile: azure.StorageProfile{
			StorageSizeGB:       128,
			BackupRetentionDays: 7,
			GeoRedundantBackup:  "Enabled",
		},
	}}
	res, out, err := GetServerConfig(context.Background(), deps)
	if err != nil || res != nil {
		t.Fatalf("unexpected failure: %v %v", res, err)
	}
	if out.Server.Name != "test-server" || out.Server.Location != "eastus" || out.Server.SKU != "Standard_D2s_v3" {
		t.Fatalf("unexpected server config: %+v", out.Server)
	}
	if out.Server.StorageProfile.BackupRetentionDays != 7 || out.Server.StorageProfile.GeoRedundantBackup != "Enabled" {
		t.Fatalf("unexpected storage profile: %+v", out.Server.StorageProfile)
	}
}

func TestGetServerParameter(t *testing.T) {
	deps := testDeps(config.Config{UseAAD: true})
	deps.Mgmt = &fakeMgmt{param: &azure.Parameter{Param: "max_connections", Value: "100"}}

	res, out, err := GetServerParameter(context.Background(), deps, GetServerParameterInput{Name: "max_connections"})
	if err != nil || res != nil {
		t.Fatalf("unexpected failure: %v %v", res, err)
	}
	if out.Param != "max_connections" || out.Value != "100" {
		t.Fatalf("unexpected parameter: %+v", out)
	}

	res, _, _ = GetServerParameter(context.Background(), deps, GetServerParameterInput{})
	if res == nil || !res.IsError {
		t.Fatal("expected INVALID_INPUT for empty name")
	}
}

func TestGetServerParameterNetworkError(t *testing.T) {
	deps := testDeps(config.Config{UseAAD: true})
	deps.Mgmt = &fakeMgmt{err: errors.New("network error")}
	res, _, err := GetServerParameter(context.Background(), deps, GetServerParameterInput{Name: "max_connections"})
	if err != nil || res == nil || !res.IsError {
		t.Fatalf("expected error result, got %v err %v", res, err)
	}
}
