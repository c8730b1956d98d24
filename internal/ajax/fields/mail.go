package fields

// Mail columns.
var (
	MailID                        = Field{600, "id"}
	MailFolderID                  = Field{601, "folder_id"}
	MailAttachment                = Field{602, "attachment"}
	MailFrom                      = Field{603, "from"}
	MailTo                        = Field{604, "to"}
	MailCc                        = Field{605, "cc"}
	MailBcc                       = Field{606, "bcc"}
	MailSubject                   = Field{607, "subject"}
	MailSize                      = Field{608, "size"}
	MailSentDate                  = Field{609, "sent_date"}
	MailReceivedDate              = Field{610, "received_date"}
	MailFlags                     = Field{611, "flags"}
	MailThreadLevel               = Field{612, "level"}
	MailDispositionNotificationTo = Field{613, "disp_notification_to"}
	MailPriority                  = Field{614, "priority"}
	MailMsgRef                    = Field{615, "msgref"}
	MailReplyTo                   = Field{616, "reply_to"}
	MailHeaders                   = Field{617, "headers"}
	MailUserFlags                 = Field{618, "user"}
	MailContentType               = Field{619, "content_type"}
	MailMessageID                 = Field{620, "message_id"}
	MailFlagSeen                  = Field{651, "seen"}
	MailAccountName               = Field{652, "account_name"}
	MailAccountID                 = Field{653, "account_id"}
)
