package activity

import "github.com/tacoeaterman/yepagain/internal/models"

type AppendEntryInput struct {
	SessionID string
	Entry     *models.ActivityEntry
}

type GetEntriesInput struct {
	SessionID string

	// Start and Stop are inclusive indexes into the history; negative
	// values count from the end, so Start=0 Stop=-1 returns everything
	Start int64
	Stop  int64
}

type GetEntriesOutput struct {
	Entries []*models.ActivityEntry
}

type DeleteLogInput struct {
	SessionID string
}
