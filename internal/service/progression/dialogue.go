package progression

// Pet dialogue lines shown after a session. The product ships in
// Vietnamese; localization is handled by the UI for everything except
// these pet lines, which the original keeps server-side.
const (
	dialogueAntiCheat   = "Bạn học nhanh quá, tôi theo không kịp! Hãy tập trung hơn nhé. 🐢"
	dialogueLevelUp     = "Wow! Chúng ta đã lên cấp rồi! Bạn thật tuyệt vời! ✨"
	dialogueHighAcc     = "Tuyệt đối chính xác! Bạn là một thiên tài! 🧠"
	dialogueDefault     = "Học tốt lắm! Tiếp tục phát huy nhé! 👍"
	messageFeedSuccess  = "Yum! Your pet is happy and full! 🍎"
	messagePatSuccess   = "Your pet loves the attention! ❤️"
)

// highAccuracyThreshold picks the enthusiastic line.
const highAccuracyThreshold = 0.9

// selectDialogue chooses the pet's post-session line.
func selectDialogue(leveledUp bool, accuracy float64) string {
	switch {
	case leveledUp:
		return dialogueLevelUp
	case accuracy > highAccuracyThreshold:
		return dialogueHighAcc
	default:
		return dialogueDefault
	}
}
