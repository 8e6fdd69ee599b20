package domain

import "testing"

func TestChatCanRead(t *testing.T) {
	owner := &AuthContext{UserID: "owner", Role: RoleMember}
	other := &AuthContext{UserID: "other", Role: RoleMember}
	admin := &AuthContext{UserID: "admin", Role: RoleAdmin}

	private := &Chat{UserID: "owner", Visibility: VisibilityPrivate}
	public := &Chat{UserID: "owner", Visibility: VisibilityPublic}

	if !private.CanRead(owner) {
		t.Error("owner should read private chat")
	}
	if private.CanRead(other) {
		t.Error("other user should not read private chat")
	}
	if !private.CanRead(admin) {
		t.Error("admin should read private chat")
	}
	if private.CanRead(nil) {
		t.Error("anonymous caller should not read private chat")
	}
	if !public.CanRead(nil) {
		t.Error("anyone should read public chat")
	}
}

func TestMessageDocumentRefs(t *testing.T) {
	msg := &Message{
		Parts: []MessagePart{
			{Type: PartText, Text: "Here is the draft. "},
			{Type: PartToolInvocation, ToolInvocation: &ToolInvocation{
				ToolName: ToolCreateDocument,
				Result:   &DocumentRef{ID: "doc-1"},
			}},
			{Type: PartToolInvocation, ToolInvocation: &ToolInvocation{
				ToolName: "getWeather",
				Result:   &DocumentRef{ID: "ignored"},
			}},
			{Type: PartToolInvocation, ToolInvocation: &ToolInvocation{
				ToolName: ToolUpdateDocument,
			}},
			{Type: PartText, Text: "Done."},
		},
	}

	refs := msg.DocumentRefs()
	if len(refs) != 1 {
		t.Fatalf("expected 1 document ref, got %d", len(refs))
	}
	if refs[0].ID != "doc-1" {
		t.Errorf("expected doc-1, got %s", refs[0].ID)
	}
	if msg.Text() != "Here is the draft. Done." {
		t.Errorf("unexpected text %q", msg.Text())
	}
}

func TestVisibilityIsValid(t *testing.T) {
	if !VisibilityPrivate.IsValid() || !VisibilityPublic.IsValid() {
		t.Error("known visibilities should be valid")
	}
	if Visibility("team").IsValid() {
		t.Error("unknown visibility should be invalid")
	}
}
