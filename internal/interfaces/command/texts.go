package command

// Replies shown to users. %s placeholders are times in HH:MM form.
const (
	helpText = "👋 Hi! I send you one reminder every day at the time you choose.\n" +
		"/set_schedule HH:MM to set the reminder time, e.g. /set_schedule 08:30\n" +
		"/view_schedule to see your current time\n" +
		"/delete_schedule to stop reminders\n" +
		"/update_schedule OLD NEW to change the time only if it is still OLD, e.g. /update_schedule 08:30 09:00"

	setOKText          = "✅ Reminder set for %s. I will remind you every day."
	setUsageText       = "⚠️ Invalid time format. Use /set_schedule HH:MM, for example /set_schedule 14:30."
	viewText           = "🕒 Your daily reminder is set for %s."
	viewNotSetText     = "ℹ️ You have no reminder yet. Use /set_schedule HH:MM to set one."
	deleteOKText       = "🗑️ Your reminder has been deleted."
	updateOKText       = "🔄 Reminder updated from %s to %s."
	updateMismatchText = "⚠️ Could not update: your reminder is not set for %s. Check it with /view_schedule."
	updateUsageText    = "⚠️ Invalid format. Use /update_schedule OLD NEW, for example /update_schedule 14:00 15:30."
	unknownText        = "🤔 Unknown command. Send /help to see what I can do."
	failureText        = "❌ Something went wrong. Please try again later."
)
