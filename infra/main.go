package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/finsight/finsight-backend/infra/cloudrun"
	"github.com/finsight/finsight-backend/infra/cloudsql"
	"github.com/finsight/finsight-backend/infra/docker"
	"github.com/finsight/finsight-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// managed Postgres instance for the API
		db, err := cloudsql.SetupCloudSQL(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, db, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
