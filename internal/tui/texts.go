package tui

// UI texts as {en, hy} pairs.
var (
	msgSignInTitle = [2]string{"Sign in", "Մուտք"}
	msgOpenURL     = [2]string{
		"Open this address in a browser and sign in with Google:",
		"Բացեք այս հասցեն դիտարկիչում և մուտք գործեք Google-ով․",
	}
	msgPasteBack = [2]string{
		"Then paste the address you were sent back to, the google_user cookie or the Cookie header:",
		"Այնուհետև տեղադրեք վերադարձի հասցեն, google_user cookie-ն կամ Cookie վերնագիրը․",
	}
	msgCopied    = [2]string{"Sign-in address copied", "Մուտքի հասցեն պատճենված է"}
	msgBadCookie = [2]string{"This is not a valid sign-in cookie", "Սա վավեր մուտքի cookie չէ"}

	msgLoading   = [2]string{"Loading…", "Բեռնվում է…"}
	msgNotFound  = [2]string{"There is no form on this page.", "Այս էջում ձև չկա։"}
	msgStep      = [2]string{"Step", "Քայլ"}
	msgOf        = [2]string{"of", "ից"}
	msgSignedIn  = [2]string{"Signed in as", "Մուտք է գործել"}
	msgRestored  = [2]string{"Draft restored", "Սևագիրը վերականգնված է"}
	msgSending   = [2]string{"Sending…", "Ուղարկվում է…"}
	msgSubmitted = [2]string{
		"Thank you! Your answers have been sent.",
		"Շնորհակալություն։ Ձեր պատասխաններն ուղարկված են։",
	}
	msgDraftFailed = [2]string{"Draft not saved", "Սևագիրը չպահպանվեց"}
)
