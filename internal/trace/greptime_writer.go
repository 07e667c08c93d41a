package trace

import (
	"context"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

const defaultTraceTable = "bandwidth_trace"

// GreptimeWriter stores trace rows in GreptimeDB via the ingester client.
type GreptimeWriter struct {
	client greptime.Client
	db     string
	table  string
}

// NewGreptimeWriter creates the writer and auto-creates the table if needed.
func NewGreptimeWriter(endpoint, database, tableName string) (*GreptimeWriter, error) {
	if tableName == "" {
		tableName = defaultTraceTable
	}
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}

	ddl := `
CREATE TABLE IF NOT EXISTS ` + tableName + ` (
  session_id STRING TAG,
  profile STRING TAG,
  mbps DOUBLE,
  bits_per_second DOUBLE,
  link_running DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
	if _, err := client.SQL(ctx, ddl); err != nil {
		return nil, err
	}

	return &GreptimeWriter{client: client, db: database, table: tableName}, nil
}

// Write inserts a single trace row.
func (w *GreptimeWriter) Write(row Row) error {
	ctx := ingesterContext.NewContext(context.Background())

	linkRunning := 0.0
	if row.LinkUp {
		linkRunning = 1.0
	}

	tbl := table.New(w.table)
	tbl.AddTagColumn("session_id", types.StringType, 0)
	tbl.AddTagColumn("profile", types.StringType, 0)
	tbl.AddFieldColumn("mbps", types.Float64Type)
	tbl.AddFieldColumn("bits_per_second", types.Float64Type)
	tbl.AddFieldColumn("link_running", types.Float64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	tbl.AppendTagValue("session_id", row.SessionID)
	tbl.AppendTagValue("profile", row.Profile)
	tbl.AppendFieldValue("mbps", row.Mbps)
	tbl.AppendFieldValue("bits_per_second", float64(row.BitsPerSecond))
	tbl.AppendFieldValue("link_running", linkRunning)
	tbl.AppendTimeIndex(row.Timestamp)

	return w.client.Write(ctx, w.db, []*table.Table{tbl})
}
