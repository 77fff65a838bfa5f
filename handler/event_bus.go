package handler

import (
	"fmt"

	"github.com/neovim/go-client/nvim"

	"github.com/kndndrj/gqlbee/core"
	"github.com/kndndrj/gqlbee/plugin"
)

type eventBus struct {
	vim *nvim.Nvim
	log *plugin.Logger
}

func (eb *eventBus) callLua(event string, data string) {
	if eb.vim == nil {
		return
	}

	err := eb.vim.ExecLua(fmt.Sprintf(`require("gqlbee.handler.__events").trigger(%q, %s)`, event, data), nil)
	if err != nil {
		eb.log.Infof("eb.vim.ExecLua: %s", err)
	}
}

func (eb *eventBus) CallStateChanged(call *core.Call) {
	errMsg := "nil"
	if err := call.Err(); err != nil {
		errMsg = fmt.Sprintf("%q", err.Error())
	}

	data := fmt.Sprintf(`{
		call = {
			id = %q,
			query = %q,
			state = %q,
			time_taken_us = %d,
			timestamp_us = %d,
			error = %s,
		},
	}`, call.GetID(),
		call.GetQuery(),
		call.GetState().String(),
		call.GetTimeTaken().Microseconds(),
		call.GetTimestamp().UnixMicro(),
		errMsg)

	eb.callLua("call_state_changed", data)
}

// TableChanged is sent whenever the current table is replaced or cleared
func (eb *eventBus) TableChanged(table *core.Table) {
	rows, columns := 0, 0
	if table != nil {
		rows, columns = table.Len(), len(table.Header())
	}

	data := fmt.Sprintf(`{
		empty = %t,
		rows = %d,
		columns = %d,
	}`, table.IsEmpty(), rows, columns)

	eb.callLua("table_changed", data)
}
