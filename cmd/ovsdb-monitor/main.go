// Command ovsdb-monitor connects to an OVSDB server, prints the database
// schema, monitors one table and prints its initial contents followed by
// every subsequent update.
package main

import (
	"fmt"
	"os"

	"github.com/ovsdb-go/ovsdb"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	endpoint = flag.StringP("ovsdb", "o", "unix:/var/run/openvswitch/db.sock", "OVSDB connection string (comma-separated endpoints)")
	database = flag.StringP("database", "d", "Open_vSwitch", "database to monitor")
	table    = flag.StringP("table", "t", "Bridge", "table to monitor")
	verbose  = flag.BoolP("verbose", "v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	level := logrus.InfoLevel
	if *verbose {
		level = logrus.DebugLevel
	}
	logger := ovsdb.NewLogger(level)

	client, err := ovsdb.Dial(*endpoint, ovsdb.WithLogger(logger))
	if err != nil {
		logger.Fatalf("connect: %v", err)
	}
	defer client.Close()

	client.OnLifecycleEvent(func(event ovsdb.LifecycleEvent, _ []interface{}) {
		switch event {
		case ovsdb.EventDisconnected:
			logger.Warn("disconnected from server")
		case ovsdb.EventEchoed:
			logger.Debug("replied to echo")
		}
	})

	dbs, err := client.ListDatabases()
	if err != nil {
		logger.Fatalf("list_dbs: %v", err)
	}
	logger.Infof("databases: %v", dbs)

	schema, err := client.GetSchema(*database)
	if err != nil {
		logger.Fatalf("get_schema: %v", err)
	}
	schema.Print(os.Stdout)
	tableSchema, ok := schema.Table(*table)
	if !ok {
		logger.Fatalf("table %q not found in database %q", *table, *database)
	}
	columns := make([]string, 0, len(tableSchema.Columns))
	for name := range tableSchema.Columns {
		columns = append(columns, name)
	}

	requests := map[string]ovsdb.MonitorRequest{
		*table: {Columns: columns},
	}
	initial, err := client.Monitor(*database, *table, requests)
	if err != nil {
		logger.Fatalf("monitor: %v", err)
	}
	fmt.Printf("initial state: %+v\n", initial)

	for notif := range client.Subscribe() {
		fmt.Printf("update: %+v\n", notif.Message)
	}
}
