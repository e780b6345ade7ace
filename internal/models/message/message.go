package message

import "marketplace_web/internal/lib/isotime"

type Message struct {
	Id         int64        `json:"id"`
	ProjectId  int64        `json:"project_id"`
	SenderName string       `json:"sender_name"`
	Content    string       `json:"content"`
	CreatedAt  isotime.Time `json:"created_at"`
}

type MessageRequest struct {
	Content string `json:"content"`
}
