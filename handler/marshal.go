package handler

import (
	"github.com/neovim/go-client/msgpack"

	"github.com/kndndrj/gqlbee/core"
	"github.com/kndndrj/gqlbee/core/format"
)

// callWrap is a wrapper around core.Call with msgpack marshaling capabilities
type callWrap struct {
	call *core.Call
}

func WrapCall(call *core.Call) *callWrap {
	return &callWrap{
		call: call,
	}
}

func WrapCalls(calls []*core.Call) []*callWrap {
	wraps := make([]*callWrap, len(calls))

	for i := range calls {
		wraps[i] = &callWrap{
			call: calls[i],
		}
	}

	return wraps
}

func (cw *callWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if cw.call == nil {
		return enc.Encode(nil)
	}

	errMsg := ""
	if err := cw.call.Err(); err != nil {
		errMsg = err.Error()
	}

	return enc.Encode(&struct {
		ID        string `msgpack:"id"`
		Query     string `msgpack:"query"`
		State     string `msgpack:"state"`
		TimeTaken int64  `msgpack:"time_taken_us"`
		Timestamp int64  `msgpack:"timestamp_us"`
		Error     string `msgpack:"error,omitempty"`
	}{
		ID:        string(cw.call.GetID()),
		Query:     cw.call.GetQuery(),
		State:     cw.call.GetState().String(),
		TimeTaken: cw.call.GetTimeTaken().Microseconds(),
		Timestamp: cw.call.GetTimestamp().UnixMicro(),
		Error:     errMsg,
	})
}

// tableWrap describes the shape of a table without its cells
type tableWrap struct {
	table *core.Table
}

func WrapTable(table *core.Table) *tableWrap {
	return &tableWrap{
		table: table,
	}
}

func (tw *tableWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if tw.table == nil {
		return enc.Encode(nil)
	}
	return enc.Encode(&struct {
		Rows    int           `msgpack:"rows"`
		Columns []core.Column `msgpack:"columns"`
	}{
		Rows:    tw.table.Len(),
		Columns: tw.table.Columns(),
	})
}

// blobWrap is a wrapper around format.Blob with msgpack marshaling capabilities
type blobWrap struct {
	blob *format.Blob
}

func WrapBlob(blob *format.Blob) *blobWrap {
	return &blobWrap{
		blob: blob,
	}
}

func (bw *blobWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if bw.blob == nil {
		return enc.Encode(nil)
	}
	return enc.Encode(&struct {
		FileName    string `msgpack:"file_name"`
		ContentType string `msgpack:"content_type"`
		Data        string `msgpack:"data"`
	}{
		FileName:    bw.blob.FileName,
		ContentType: bw.blob.ContentType,
		Data:        string(bw.blob.Data),
	})
}
