package matching

import "swap-service/internal/models"

// CanonicalPair maps an unordered user pair to its canonical ordered form,
// lower id first. Chats are stored under this ordering so one row can
// exist per pair.
func CanonicalPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// matchRow is one match joined with both likes and both items, as fetched
// for the grouped match listing.
type matchRow struct {
	MatchID       int    `db:"match_id"`
	LikerOne      int    `db:"liker_one"`
	LikerTwo      int    `db:"liker_two"`
	ItemOneID     int    `db:"item_one_id"`
	ItemOneName   string `db:"item_one_name"`
	ItemOneStatus string `db:"item_one_status"`
	ItemOneOwner  int    `db:"item_one_owner"`
	ItemTwoID     int    `db:"item_two_id"`
	ItemTwoName   string `db:"item_two_name"`
	ItemTwoStatus string `db:"item_two_status"`
	ItemTwoOwner  int    `db:"item_two_owner"`
}

// pairGroup accumulates the match rows that involve one other user.
type pairGroup struct {
	otherUserID   int
	itemsFromUser []models.Item
	itemsFromThem []models.Item
	seenFromUser  map[int]struct{}
	seenFromThem  map[int]struct{}
}

// groupRows groups match rows by the other participant. For each row the
// side whose liker is userID contributes to items-from-user (the items the
// caller liked) and the opposite side to items-from-them. Items are
// deduplicated per group; groups come out ordered by other user id.
func groupRows(userID int, rows []matchRow) []*pairGroup {
	byOther := map[int]*pairGroup{}
	var order []int

	for _, row := range rows {
		itemFromUser := models.Item{ID: row.ItemOneID, Name: row.ItemOneName, Status: row.ItemOneStatus, OwnerID: row.ItemOneOwner}
		itemFromThem := models.Item{ID: row.ItemTwoID, Name: row.ItemTwoName, Status: row.ItemTwoStatus, OwnerID: row.ItemTwoOwner}
		otherID := row.LikerTwo
		if row.LikerOne != userID {
			otherID = row.LikerOne
			itemFromUser, itemFromThem = itemFromThem, itemFromUser
		}

		group, ok := byOther[otherID]
		if !ok {
			group = &pairGroup{
				otherUserID:  otherID,
				seenFromUser: map[int]struct{}{},
				seenFromThem: map[int]struct{}{},
			}
			byOther[otherID] = group
			order = append(order, otherID)
		}
		if _, seen := group.seenFromUser[itemFromUser.ID]; !seen {
			group.seenFromUser[itemFromUser.ID] = struct{}{}
			group.itemsFromUser = append(group.itemsFromUser, itemFromUser)
		}
		if _, seen := group.seenFromThem[itemFromThem.ID]; !seen {
			group.seenFromThem[itemFromThem.ID] = struct{}{}
			group.itemsFromThem = append(group.itemsFromThem, itemFromThem)
		}
	}

	groups := make([]*pairGroup, 0, len(order))
	for _, otherID := range order {
		groups = append(groups, byOther[otherID])
	}
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j-1].otherUserID > groups[j].otherUserID; j-- {
			groups[j-1], groups[j] = groups[j], groups[j-1]
		}
	}
	return groups
}
