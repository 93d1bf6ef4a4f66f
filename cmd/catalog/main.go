// @title                       Service Catalog API
// @version                     1.0
// @description                 Multi-tenant service catalog with role-based access control.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"os"

	"github.com/catalogo/service-catalog/internal/cli"
)

//go:generate swag init --dir ../../ --generalInfo cmd/catalog/main.go --output ../../docs --outputTypes go --parseInternal

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
