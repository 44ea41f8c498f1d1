package bot

// Authorizer decides who may use the admin console.
type Authorizer interface {
	IsAdmin(telegramID int64) bool
}

// StaticAllowList authorizes a fixed set of Telegram IDs.
type StaticAllowList struct {
	ids map[int64]struct{}
}

func NewStaticAllowList(ids []int64) *StaticAllowList {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &StaticAllowList{ids: set}
}

func (a *StaticAllowList) IsAdmin(telegramID int64) bool {
	_, ok := a.ids[telegramID]
	return ok
}
