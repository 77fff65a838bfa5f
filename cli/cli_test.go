package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/gqlbee/cli"
	"github.com/kndndrj/gqlbee/core/mock"
)

const ordersResponse = `{"data":{"orders":{"items":[
	{"OrderID":1,"dimension_customer":{"PostalCode":"1000"},"UnitPrice":3},
	{"OrderID":2,"dimension_customer":{"PostalCode":"2000"},"UnitPrice":4.5}
]}}}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	out := new(bytes.Buffer)
	cmd := cli.NewRootCommand(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestFlatten_Stdin(t *testing.T) {
	r := require.New(t)

	out, err := run(t, ordersResponse, "flatten", "--format", "csv")
	r.NoError(err)
	r.Equal("\"Order ID\",\"Postal Code\",\"Unit Price\"\n1,1000,3.00\n2,2000,4.50\n", out)

	out, err = run(t, ordersResponse, "flatten")
	r.NoError(err)
	r.Contains(out, "Postal Code")
	r.Contains(out, "4.50")
}

func TestFlatten_CurrencyMarkers(t *testing.T) {
	r := require.New(t)

	out, err := run(t, ordersResponse, "flatten", "-f", "csv", "--currency-markers", "Order")
	r.NoError(err)
	r.Equal("\"Order ID\",\"Postal Code\",\"Unit Price\"\n1.00,1000,3\n2.00,2000,4.5\n", out)
}

func TestFlatten_FileToDirectory(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "orders.json")
	r.NoError(os.WriteFile(input, []byte(ordersResponse), 0o644))

	out, err := run(t, "", "flatten", "-i", input, "-f", "excel", "-o", dir)
	r.NoError(err)
	r.Empty(out)

	b, err := os.ReadFile(filepath.Join(dir, "orders.xls"))
	r.NoError(err)
	r.True(strings.HasPrefix(string(b), `"Order ID","Postal Code","Unit Price"`))
}

func TestFlatten_Errors(t *testing.T) {
	r := require.New(t)

	_, err := run(t, `{"errors":[{"message":"a"},{"message":"b"}],"data":{"x":[{"y":1}]}}`, "flatten")
	r.ErrorContains(err, "a, b")

	_, err = run(t, `not json`, "flatten")
	r.ErrorContains(err, "not valid JSON")

	_, err = run(t, `{"data":{}}`, "flatten", "-f", "csv")
	r.ErrorContains(err, "no tabular data")

	_, err = run(t, ordersResponse, "flatten", "-f", "yaml")
	r.Error(err)
}

func TestFlatten_EnvironmentConfig(t *testing.T) {
	r := require.New(t)

	t.Setenv("GQLBEE_FORMAT", "json")

	out, err := run(t, ordersResponse, "flatten")
	r.NoError(err)
	r.Contains(out, `"OrderID"`)

	// flags win over the environment
	out, err = run(t, ordersResponse, "flatten", "-f", "csv")
	r.NoError(err)
	r.True(strings.HasPrefix(out, `"Order ID"`))
}

func TestQuery(t *testing.T) {
	r := require.New(t)

	srv := mock.NewServer(mock.NewResponse("customers", mock.NewRows(0, 2)), mock.ServerWithToken("t0k3n"))
	defer srv.Close()

	out, err := run(t, "",
		"query",
		"--endpoint", srv.URL,
		"--token", "t0k3n",
		"-f", "csv",
		"-q", `{ customers { items { id name } } }`,
		"-q", `{ customers { items { id } } }`,
	)
	r.NoError(err)
	r.Equal("\"id\",\"name\"\n0,row_0\n1,row_1\n"+"\"id\",\"name\"\n0,row_0\n1,row_1\n", out)
}

func TestQuery_Errors(t *testing.T) {
	r := require.New(t)

	srv := mock.NewServer(mock.NewResponse("customers", mock.NewRows(0, 2)), mock.ServerWithToken("t0k3n"))
	defer srv.Close()

	_, err := run(t, "", "query", "--endpoint", srv.URL)
	r.ErrorContains(err, "no query provided")

	_, err = run(t, "", "query", "-q", `{ customers { id } }`)
	r.ErrorContains(err, "no endpoint provided")

	_, err = run(t, "", "query", "--endpoint", srv.URL, "-q", `{ customers { id } }`)
	r.ErrorContains(err, "401")

	_, err = run(t, "", "query", "--endpoint", srv.URL, "-q", `{ customers { `)
	r.ErrorContains(err, "invalid query")

	_, err = run(t, "", "query", "--endpoint", srv.URL, "-q", `{ a }`, "-q", `{ b }`, "-o", filepath.Join(t.TempDir(), "x.csv"))
	r.ErrorContains(err, "must be an existing directory")
}

func TestQuery_ToDirectory(t *testing.T) {
	r := require.New(t)

	srv := mock.NewServer(mock.NewResponse("customers", mock.NewRows(0, 3)))
	defer srv.Close()

	dir := t.TempDir()
	queryFile := filepath.Join(dir, "query.graphql")
	r.NoError(os.WriteFile(queryFile, []byte(`query { vip: customers { items { id name } } }`), 0o644))

	_, err := run(t, "", "query", "-e", srv.URL, "--query-file", queryFile, "-f", "csv", "-o", dir, "--var", "limit=3")
	r.NoError(err)

	b, err := os.ReadFile(filepath.Join(dir, "vip.csv"))
	r.NoError(err)
	r.Equal("\"id\",\"name\"\n0,row_0\n1,row_1\n2,row_2\n", string(b))
}
