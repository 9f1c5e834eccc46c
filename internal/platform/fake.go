package platform

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

// SentEmbed is a message recorded by Fake
type SentEmbed struct {
	ChannelID string
	MessageID string
	Embed     *discordgo.MessageEmbed
}

// Fake is an in-memory Gateway for tests
type Fake struct {
	mu        sync.Mutex
	members   map[string]domain.Member
	roles     map[string]map[string]struct{}
	presences map[string]domain.Presence
	channels  map[string]struct{}
	messages  map[string]*SentEmbed
	sent      []SentEmbed
	edits     []SentEmbed
	reactions []string
	roleAdds  []string
	nextID    int

	// Err, when set for a method name, is returned by that method
	Err map[string]error
}

// NewFake creates an empty fake guild
func NewFake() *Fake {
	return &Fake{
		members:   make(map[string]domain.Member),
		roles:     make(map[string]map[string]struct{}),
		presences: make(map[string]domain.Presence),
		channels:  make(map[string]struct{}),
		messages:  make(map[string]*SentEmbed),
		Err:       make(map[string]error),
	}
}

// AddMember registers a member with a presence and roles
func (f *Fake) AddMember(m domain.Member, presence domain.Presence, roles ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[m.UserID] = m
	f.presences[m.UserID] = presence
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	f.roles[m.UserID] = set
}

// RemoveMember drops a member as if they left the guild
func (f *Fake) RemoveMember(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, userID)
	delete(f.presences, userID)
	delete(f.roles, userID)
}

// SetPresence changes a member's presence
func (f *Fake) SetPresence(userID string, p domain.Presence) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presences[userID] = p
}

// AddChannel registers a text channel
func (f *Fake) AddChannel(channelID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[channelID] = struct{}{}
}

// SetErr makes method fail with err; nil clears it
func (f *Fake) SetErr(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.Err, method)
		return
	}
	f.Err[method] = err
}

// Sent returns every SendEmbed call so far
func (f *Fake) Sent() []SentEmbed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentEmbed(nil), f.sent...)
}

// Edits returns every EditEmbed call so far
func (f *Fake) Edits() []SentEmbed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentEmbed(nil), f.edits...)
}

// Reactions returns every reaction added as "messageID:emoji"
func (f *Fake) Reactions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reactions...)
}

// RoleAdds returns every successful AddRole as "userID:roleID"
func (f *Fake) RoleAdds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.roleAdds...)
}

// Roles returns the roles a member currently holds
func (f *Fake) Roles(userID string) []string {
	roles, _ := f.MemberRoles(context.Background(), userID)
	return roles
}

func (f *Fake) fail(method string) error {
	return f.Err[method]
}

// SendEmbed implements Gateway
func (f *Fake) SendEmbed(_ context.Context, channelID string, embed *discordgo.MessageEmbed) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("SendEmbed"); err != nil {
		return "", err
	}
	if _, ok := f.channels[channelID]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrChannelNotFound, channelID)
	}
	f.nextID++
	msg := SentEmbed{ChannelID: channelID, MessageID: "msg-" + strconv.Itoa(f.nextID), Embed: embed}
	f.sent = append(f.sent, msg)
	f.messages[msg.MessageID] = &msg
	return msg.MessageID, nil
}

// EditEmbed implements Gateway
func (f *Fake) EditEmbed(_ context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("EditEmbed"); err != nil {
		return err
	}
	msg, ok := f.messages[messageID]
	if !ok || msg.ChannelID != channelID {
		return fmt.Errorf("%w: message %s", domain.ErrNotFound, messageID)
	}
	msg.Embed = embed
	f.edits = append(f.edits, SentEmbed{ChannelID: channelID, MessageID: messageID, Embed: embed})
	return nil
}

// AddReaction implements Gateway
func (f *Fake) AddReaction(_ context.Context, _, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AddReaction"); err != nil {
		return err
	}
	if _, ok := f.messages[messageID]; !ok {
		return fmt.Errorf("%w: message %s", domain.ErrNotFound, messageID)
	}
	f.reactions = append(f.reactions, messageID+":"+emoji)
	return nil
}

// AddRole implements Gateway
func (f *Fake) AddRole(_ context.Context, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AddRole"); err != nil {
		return err
	}
	set, ok := f.roles[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrMemberNotFound, userID)
	}
	set[roleID] = struct{}{}
	f.roleAdds = append(f.roleAdds, userID+":"+roleID)
	return nil
}

// RemoveRole implements Gateway
func (f *Fake) RemoveRole(_ context.Context, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("RemoveRole"); err != nil {
		return err
	}
	set, ok := f.roles[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrMemberNotFound, userID)
	}
	delete(set, roleID)
	return nil
}

// MemberRoles implements Gateway
func (f *Fake) MemberRoles(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("MemberRoles"); err != nil {
		return nil, err
	}
	set, ok := f.roles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, userID)
	}
	roles := make([]string, 0, len(set))
	for r := range set {
		roles = append(roles, r)
	}
	return roles, nil
}

// Presence implements Gateway
func (f *Fake) Presence(_ context.Context, userID string) (domain.Presence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Presence"); err != nil {
		return "", err
	}
	if _, ok := f.members[userID]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrPresenceUnknown, userID)
	}
	p := f.presences[userID]
	if p == "" {
		p = domain.PresenceOffline
	}
	return p, nil
}

// Member implements Gateway
func (f *Fake) Member(_ context.Context, userID string) (domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("Member"); err != nil {
		return domain.Member{}, err
	}
	m, ok := f.members[userID]
	if !ok {
		return domain.Member{}, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, userID)
	}
	return m, nil
}

// MemberCounts implements Gateway
func (f *Fake) MemberCounts(_ context.Context, roleID string) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("MemberCounts"); err != nil {
		return 0, 0, err
	}
	with := 0
	for userID := range f.members {
		if _, ok := f.roles[userID][roleID]; ok {
			with++
		}
	}
	return len(f.members), with, nil
}

var _ Gateway = (*Fake)(nil)
