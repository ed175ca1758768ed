package cloudsql

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/sql"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Database bundles the provisioned instance with the values the API
// container needs to reach it.
type Database struct {
	Instance *sql.DatabaseInstance

	// ConnectionName feeds the cloudsql-instances annotation on the
	// Cloud Run service.
	ConnectionName pulumi.StringOutput

	// DSN connects through the Cloud SQL unix socket mounted into the
	// container, so no public IP path is involved.
	DSN pulumi.StringOutput
}

func SetupCloudSQL(ctx *pulumi.Context, prov *gcp.Provider) (*Database, error) {
	svc, err := enableCloudSQL(ctx, prov)
	if err != nil {
		return nil, err
	}

	return createDatabase(ctx, prov, svc)
}

func enableCloudSQL(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudSQLService", &projects.ServiceArgs{
		Service: pulumi.String("sqladmin.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	dbCfg := config.New(ctx, "database")

	region := gcpCfg.Require("region")
	tier := dbCfg.Require("tier")
	password := dbCfg.RequireSecret("password")

	inst, err := sql.NewDatabaseInstance(ctx, "apiDatabaseInstance", &sql.DatabaseInstanceArgs{
		DatabaseVersion: pulumi.String("POSTGRES_16"),
		Region:          pulumi.String(region),
		Settings: &sql.DatabaseInstanceSettingsArgs{
			Tier: pulumi.String(tier),
		},
		DeletionProtection: pulumi.Bool(true),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
	if err != nil {
		return nil, err
	}

	_, err = sql.NewDatabase(ctx, "apiDatabase", &sql.DatabaseArgs{
		Name:     pulumi.String("finsight"),
		Instance: inst.Name,
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	_, err = sql.NewUser(ctx, "apiDatabaseUser", &sql.UserArgs{
		Name:     pulumi.String("finsight"),
		Instance: inst.Name,
		Password: password,
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	dsn := pulumi.Sprintf("postgres://finsight:%s@/finsight?host=/cloudsql/%s",
		password, inst.ConnectionName)

	return &Database{
		Instance:       inst,
		ConnectionName: inst.ConnectionName,
		DSN:            dsn,
	}, nil
}
