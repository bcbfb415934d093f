package migrations

import "gorm.io/gorm"

// Migration002AddChatIndexes adds composite indexes for the chat and
// statistics hot paths that gorm's per-column tags do not cover:
//  1. unread counting: WHERE conversation_id = ? AND sender_id <> ? AND leido = false
//  2. conversation lists ordered by recent activity
//  3. weekly emotion aggregation: WHERE user_id = ? AND created_at >= ?
func Migration002AddChatIndexes() Migration {
	return Migration{
		ID:   "002_add_chat_indexes",
		Name: "Add indexes for unread counting and statistics queries",
		Up: func(db *gorm.DB) error {
			statements := []string{
				`CREATE INDEX IF NOT EXISTS idx_messages_unread
					ON messages (conversation_id, sender_id, leido)`,
				`CREATE INDEX IF NOT EXISTS idx_conversations_activity
					ON conversations (last_message_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_emotion_records_user_time
					ON emotion_records (user_id, created_at)`,
			}
			for _, stmt := range statements {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			for _, stmt := range []string{
				`DROP INDEX IF EXISTS idx_emotion_records_user_time`,
				`DROP INDEX IF EXISTS idx_conversations_activity`,
				`DROP INDEX IF EXISTS idx_messages_unread`,
			} {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
