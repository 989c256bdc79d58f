package jobs

import (
	"context"

	"juntaai-backend/internal/logger"
)

// SendPendingApprovalReminders emails each group owner that still has
// payments waiting for a decision.
func (jr *JobRunner) SendPendingApprovalReminders() {
	jr.runWithRecovery("SendPendingApprovalReminders", func() {
		ctx := context.Background()

		query := `
			SELECT g.id, g.name, p.full_name, COALESCE(p.email, ''), COUNT(pay.id)
			FROM groups g
			JOIN profiles p ON p.id = g.owner_id
			JOIN payments pay ON pay.group_id = g.id AND pay.status = 'PENDING'
			GROUP BY g.id, g.name, p.full_name, p.email
		`
		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to list groups with pending payments", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var groupID, groupName, ownerName, ownerEmail string
			var pending int
			if err := rows.Scan(&groupID, &groupName, &ownerName, &ownerEmail, &pending); err != nil {
				logger.Error("Failed to scan pending reminder row", "error", err)
				continue
			}
			if ownerEmail == "" {
				continue
			}
			if err := jr.email.SendPendingReminder(ctx, ownerEmail, ownerName, groupName, pending); err != nil {
				logger.Error("Failed to send pending reminder", "group_id", groupID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Pending approval reminders sent", "count", count)
	})
}
