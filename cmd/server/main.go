// Command thriftlink-server starts the marketplace HTTP API.
package main

import "thriftlink-backend/internal/app"

func main() {
	app.Run()
}
