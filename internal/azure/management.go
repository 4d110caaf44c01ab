package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	armpg "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresqlflexibleservers/v4"
)

// ServerConfig is the management-plane view of a flexible server. The field
// layout matches the JSON shape tools have always returned.
type ServerConfig struct {
	Name           string         `json:"name"`
	Location       string         `json:"location"`
	Version        string         `json:"version"`
	SKU            string         `json:"sku"`
	StorageProfile StorageProfile `json:"storage_profile"`
}

type StorageProfile struct {
	StorageSizeGB       int32  `json:"storage_size_gb"`
	BackupRetentionDays int32  `json:"backup_retention_days"`
	GeoRedundantBackup  string `json:"geo_redundant_backup"`
}

// Parameter is a single server configuration parameter.
type Parameter struct {
	Param string `json:"param"`
	Value string `json:"value"`
}

// Management is the control-plane surface the tools depend on. The ARM
// client satisfies it; tests supply fakes.
type Management interface {
	GetServerConfig(ctx context.Context) (*ServerConfig, error)
	GetServerParameter(ctx context.Context, name string) (*Parameter, error)
}

// ARMClient talks to the Azure Resource Manager API for one server.
type ARMClient struct {
	servers        *armpg.ServersClient
	configurations *armpg.ConfigurationsClient
	resourceGroup  string
	serverName     string
}

func NewARMClient(cred azcore.TokenCredential, subscriptionID, resourceGroup, serverName string) (*ARMClient, error) {
	factory, err := armpg.NewClientFactory(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("arm client factory: %w", err)
	}
	return &ARMClient{
		servers:        factory.NewServersClient(),
		configurations: factory.NewConfigurationsClient(),
		resourceGroup:  resourceGroup,
		serverName:     serverName,
	}, nil
}

// NewARMClientFromSource reuses the credential behind a token source, so one
// DefaultAzureCredential serves both the data and management planes.
func NewARMClientFromSource(src *TokenSource, subscriptionID, resourceGroup, serverName string) (*ARMClient, error) {
	return NewARMClient(src.cred, subscriptionID, resourceGroup, serverName)
}

func (c *ARMClient) GetServerConfig(ctx context.Context) (*ServerConfig, error) {
	resp, err := c.servers.Get(ctx, c.resourceGroup, c.serverName, nil)
	if err != nil {
		return nil, fmt.Errorf("get server %s: %w", c.serverName, err)
	}
	out := &ServerConfig{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
	}
	if resp.SKU != nil {
		out.SKU = deref(resp.SKU.Name)
	}
	if p := resp.Properties; p != nil {
		if p.Version != nil {
			out.Version = string(*p.Version)
		}
		if p.Storage != nil && p.Storage.StorageSizeGB != nil {
			out.StorageProfile.StorageSizeGB = *p.Storage.StorageSizeGB
		}
		if p.Backup != nil {
			if p.Backup.BackupRetentionDays != nil {
				out.StorageProfile.BackupRetentionDays = *p.Backup.BackupRetentionDays
			}
			if p.Backup.GeoRedundantBackup != nil {
				out.StorageProfile.GeoRedundantBackup = string(*p.Backup.GeoRedundantBackup)
			}
		}
	}
	return out, nil
}

func (c *ARMClient) GetServerParameter(ctx context.Context, name string) (*Parameter, error) {
	resp, err := c.configurations.Get(ctx, c.resourceGroup, c.serverName, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get parameter %s: %w", name, err)
	}
	out := &Parameter{Param: deref(resp.Name)}
	if resp.Properties != nil {
		out.Value = deref(resp.Properties.Value)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
