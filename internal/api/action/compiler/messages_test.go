package compiler

import "testing"

func TestCompileMessagesDungViTriField(t *testing.T) {
	messages := compileMessages(MessagesForm{
		RequestStartContent:    "Xin chờ một chút",
		RequestStartBlocking:   true,
		RequestCompleteContent: "Đã xong",
		RequestCompleteEndCall: true,
		RequestFailedContent:   "Có lỗi xảy ra",
	})

	if len(messages) != 3 {
		t.Fatalf("có %d message, muốn 3", len(messages))
	}

	start := messages[0]
	if start.Type != MessageRequestStart || start.Blocking == nil || !*start.Blocking {
		t.Errorf("request-start sai: %+v", start)
	}
	// blocking không được xuất hiện ngoài request-start
	if start.EndCallAfterSpokenEnabled != nil {
		t.Errorf("request-start không được mang end_call_after_spoken_enabled")
	}

	complete := messages[1]
	if complete.Blocking != nil {
		t.Errorf("request-complete không được mang blocking")
	}
	if complete.EndCallAfterSpokenEnabled == nil || !*complete.EndCallAfterSpokenEnabled {
		t.Errorf("request-complete phải mang end_call_after_spoken_enabled=true: %+v", complete)
	}

	failed := messages[2]
	if failed.EndCallAfterSpokenEnabled == nil || *failed.EndCallAfterSpokenEnabled {
		t.Errorf("request-failed phải mang end_call_after_spoken_enabled=false: %+v", failed)
	}
}

func TestCompileMessagesBoContentRong(t *testing.T) {
	messages := compileMessages(MessagesForm{RequestCompleteContent: "Đã đặt lịch xong"})
	if len(messages) != 1 || messages[0].Type != MessageRequestComplete {
		t.Fatalf("messages = %+v, muốn đúng một request-complete", messages)
	}
}

func TestHydrateMessagesBoQuaEntryThua(t *testing.T) {
	truthy := true
	form := hydrateMessages([]Message{
		{Type: MessageRequestStart, Content: "bản đầu", Blocking: &truthy},
		{Type: MessageRequestStart, Content: "bản thừa bị bỏ qua"},
		{Type: "unknown-type", Content: "loại lạ bị bỏ qua"},
	})

	if form.RequestStartContent != "bản đầu" || !form.RequestStartBlocking {
		t.Errorf("hydrate sai: %+v", form)
	}
	if form.RequestCompleteContent != "" {
		t.Errorf("request-complete phải rỗng: %+v", form)
	}
}
