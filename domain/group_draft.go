package domain

import (
	"messenger/errors"
	"slices"

	"github.com/samber/lo"
)

// GroupDraft holds the group creation form. It never leaves the client.
// Admins is always a subset of Members.
type GroupDraft struct {
	Name    string
	Members []UserID
	Admins  []UserID
}

func (d GroupDraft) Clone() GroupDraft {
	d.Members = slices.Clone(d.Members)
	d.Admins = slices.Clone(d.Admins)
	return d
}

func (d GroupDraft) IsEmpty() bool {
	return d.Name == "" && len(d.Members) == 0 && len(d.Admins) == 0
}

func (d GroupDraft) IsMember(id UserID) bool { return slices.Contains(d.Members, id) }
func (d GroupDraft) IsAdmin(id UserID) bool  { return slices.Contains(d.Admins, id) }

func (d GroupDraft) WithName(name string) GroupDraft {
	d = d.Clone()
	d.Name = name
	return d
}

// ToggleMember adds or removes a member. Removing a member also revokes admin.
func (d GroupDraft) ToggleMember(id UserID) GroupDraft {
	d = d.Clone()
	if d.IsMember(id) {
		d.Members = lo.Without(d.Members, id)
		d.Admins = lo.Without(d.Admins, id)
		return d
	}
	d.Members = append(d.Members, id)
	return d
}

// ToggleAdmin grants or revokes admin for a current member.
func (d GroupDraft) ToggleAdmin(id UserID) (GroupDraft, error) {
	if !d.IsMember(id) {
		return d, errors.ErrAdminNotMember
	}
	d = d.Clone()
	if d.IsAdmin(id) {
		d.Admins = lo.Without(d.Admins, id)
		return d, nil
	}
	d.Admins = append(d.Admins, id)
	return d, nil
}
