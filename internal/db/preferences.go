package db

import "strconv"

// Setting keys
const (
	KeyPage           = "ui.page"
	KeyTaskView       = "tasks.view"
	KeyTaskSort       = "tasks.sort"
	KeyTaskDescending = "tasks.descending"
	KeyUsername       = "auth.username"
)

// Preferences are the UI choices restored on startup
type Preferences struct {
	Page           string
	TaskView       string
	TaskSort       string
	TaskDescending bool
	Username       string
}

// LoadPreferences reads every preference; unset keys stay empty
func (db *DB) LoadPreferences() (Preferences, error) {
	var p Preferences
	var desc string
	for key, dst := range map[string]*string{
		KeyPage:           &p.Page,
		KeyTaskView:       &p.TaskView,
		KeyTaskSort:       &p.TaskSort,
		KeyTaskDescending: &desc,
		KeyUsername:       &p.Username,
	} {
		v, err := db.GetSetting(key)
		if err != nil {
			return Preferences{}, err
		}
		*dst = v
	}
	p.TaskDescending, _ = strconv.ParseBool(desc)
	return p, nil
}

// SavePreferences writes every preference in one transaction
func (db *DB) SavePreferences(p Preferences) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := map[string]string{
		KeyPage:           p.Page,
		KeyTaskView:       p.TaskView,
		KeyTaskSort:       p.TaskSort,
		KeyTaskDescending: strconv.FormatBool(p.TaskDescending),
		KeyUsername:       p.Username,
	}
	for key, value := range values {
		if err := setSetting(tx, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}
