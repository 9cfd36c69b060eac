package actionsvc

import (
	"testing"

	basesvc "voice_reception/internal/api/base/service"
	"voice_reception/internal/api/action/compiler"
)

func TestFormFolderID(t *testing.T) {
	cases := []struct {
		name string
		form compiler.FormState
		want string
	}{
		{"khong co section folder", compiler.FormState{Kind: compiler.KindEndCall}, ""},
		{
			"notification",
			compiler.FormState{Notification: &compiler.NotificationForm{FolderID: "abc"}},
			"abc",
		},
		{
			"schedule",
			compiler.FormState{Schedule: &compiler.ScheduleForm{FolderID: "def"}},
			"def",
		},
		{
			"notification uu tien truoc schedule",
			compiler.FormState{
				Notification: &compiler.NotificationForm{FolderID: "abc"},
				Schedule:     &compiler.ScheduleForm{FolderID: "def"},
			},
			"abc",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formFolderID(tc.form); got != tc.want {
				t.Errorf("formFolderID = %q, muốn %q", got, tc.want)
			}
		})
	}
}

func TestSetOrUnset(t *testing.T) {
	update := &basesvc.UpdateData{
		Set:   map[string]interface{}{},
		Unset: map[string]interface{}{},
	}

	setOrUnset(update, "functionType", true, "notification")
	setOrUnset(update, "folderId", false, nil)

	if update.Set["functionType"] != "notification" {
		t.Errorf("functionType phải nằm trong Set, got %v", update.Set)
	}
	if _, ok := update.Set["folderId"]; ok {
		t.Error("folderId không được nằm trong Set khi vắng mặt")
	}
	if _, ok := update.Unset["folderId"]; !ok {
		t.Error("folderId phải nằm trong Unset khi vắng mặt")
	}
}
