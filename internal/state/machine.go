package state

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// 消息已读状态常量
const (
	StateCreated = "created"
	StateRead    = "read"
)

// 事件常量
const (
	EventMarkRead = "mark_read"
)

// ReadMachine 单条消息的已读状态机。
// created -> read 是唯一的转换，read 为终态。
type ReadMachine struct {
	fsm *fsm.FSM
}

// NewReadMachine 根据当前已读标记创建状态机
func NewReadMachine(read bool) *ReadMachine {
	initial := StateCreated
	if read {
		initial = StateRead
	}

	return &ReadMachine{
		fsm: fsm.NewFSM(
			initial,
			fsm.Events{
				{Name: EventMarkRead, Src: []string{StateCreated}, Dst: StateRead},
			},
			fsm.Callbacks{},
		),
	}
}

// Current 获取当前状态
func (m *ReadMachine) Current() string {
	return m.fsm.Current()
}

// CanMarkRead 检查是否可以标记为已读
func (m *ReadMachine) CanMarkRead() bool {
	return m.fsm.Can(EventMarkRead)
}

// MarkRead 触发已读转换
func (m *ReadMachine) MarkRead() error {
	if err := m.fsm.Event(context.Background(), EventMarkRead); err != nil {
		return fmt.Errorf("trigger event %s: %w", EventMarkRead, err)
	}
	return nil
}
