package compiler

// compileMessages tạo messages[] theo thứ tự start, complete, failed.
// Message có content rỗng không được emit. blocking chỉ gắn vào request-start,
// end_call_after_spoken_enabled chỉ gắn vào complete/failed.
func compileMessages(form MessagesForm) []Message {
	var messages []Message

	if form.RequestStartContent != "" {
		blocking := form.RequestStartBlocking
		messages = append(messages, Message{
			Type:     MessageRequestStart,
			Content:  form.RequestStartContent,
			Blocking: &blocking,
		})
	}
	if form.RequestCompleteContent != "" {
		endCall := form.RequestCompleteEndCall
		messages = append(messages, Message{
			Type:                      MessageRequestComplete,
			Content:                   form.RequestCompleteContent,
			EndCallAfterSpokenEnabled: &endCall,
		})
	}
	if form.RequestFailedContent != "" {
		endCall := form.RequestFailedEndCall
		messages = append(messages, Message{
			Type:                      MessageRequestFailed,
			Content:                   form.RequestFailedContent,
			EndCallAfterSpokenEnabled: &endCall,
		})
	}
	return messages
}

// hydrateMessages dựng lại MessagesForm từ messages[] đã lưu.
// Chỉ entry đầu tiên của mỗi type được nhận; entry thừa bỏ qua (consumer cũng vậy).
func hydrateMessages(messages []Message) MessagesForm {
	var form MessagesForm
	seen := make(map[string]bool, 3)

	for _, msg := range messages {
		if seen[msg.Type] {
			continue
		}
		switch msg.Type {
		case MessageRequestStart:
			form.RequestStartContent = msg.Content
			if msg.Blocking != nil {
				form.RequestStartBlocking = *msg.Blocking
			}
		case MessageRequestComplete:
			form.RequestCompleteContent = msg.Content
			if msg.EndCallAfterSpokenEnabled != nil {
				form.RequestCompleteEndCall = *msg.EndCallAfterSpokenEnabled
			}
		case MessageRequestFailed:
			form.RequestFailedContent = msg.Content
			if msg.EndCallAfterSpokenEnabled != nil {
				form.RequestFailedEndCall = *msg.EndCallAfterSpokenEnabled
			}
		default:
			continue
		}
		seen[msg.Type] = true
	}
	return form
}
