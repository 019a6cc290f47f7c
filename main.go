package main

import "github.com/mediawatch/labeling-api/cmd"

// @title           Media Labeling API
// @version         1.0.0
// @description     Event labeling and reporting API for TV monitoring devices
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token issued by /api/v1/auth/login
func main() {
	cmd.Execute()
}
