package analysis

// Fixed result text. Templates take the hostname or extracted field.
const (
	emptyDescription = "The QR code is empty."
	emptyAction      = "No action will be taken."
	emptyAwareness   = "No content was provided."

	malformedDescription = "This QR code contains malformed data."
	malformedAction      = "No action can be taken."
	malformedAwareness   = "The content is not a valid URL or known data type."

	websiteDescription     = "This is a link to a website."
	websiteAction          = "It will open your browser and go to %s."
	paymentDescription     = "This is a link for a payment or account login."
	paymentAction          = "It will open your browser on a payment or login page at %s."
	appDownloadDescription = "This is a link to download an app."
	appDownloadAction      = "It will open %s to download or install an app."

	verifyDestinationNotice = "Always be sure you trust the destination domain."
	ipLoggerNotice          = "This link is from a service known for IP logging. We recommend not to open it."
	transactionalNotice     = "This appears to be a payment or login page. Ensure the site is secure (HTTPS) before entering info."
	shortenerNotice         = "It uses a URL shortener (%s), which hides the final destination. Proceed with caution."
	trackingNotice          = "This link includes tracking parameters to monitor your activity."
	appInstallNotice        = "Only install apps from trusted developers and official app stores."
	nothingUnusualNotice    = "Nothing unusual was found in this link."

	wifiDescription     = "Contains credentials to join a Wi-Fi network."
	wifiAction          = "Your device will ask to connect to the network named \"%s\"."
	wifiAwareness       = "This will automatically connect you to the Wi-Fi network. Only join networks you trust."
	wifiUnknownSSID     = "an unknown network"
	contactDescription  = "This is a vCard with contact information."
	contactAction       = "Your device will offer to save a new contact."
	contactAwareness    = "Review the details (name, number, email) before adding it to your address book."
	emailDescription    = "This QR code will start a new email."
	emailAction         = "It will open your email app with a new draft addressed to %s."
	emailAwareness      = "The body and subject may be pre-filled. Check the content before sending."
	emailUnknownAddress = "an unspecified recipient"
	phoneDescription    = "This contains a phone number to call."
	phoneAction         = "Your device will prompt you to call the number %s."
	phoneAwareness      = "Check that you recognize the number before placing the call."
	phoneUnknownNumber  = "an unknown number"

	fileDescription = "Contains an embedded file for download."
	fileAction      = "Your device will prompt you to download a file."
	fileAwareness   = "This is a high-risk action. The file could be malicious. Do not open files from sources you do not trust completely."

	unknownDescription = "Contains plain text or an unrecognized data format."
	unknownAction      = "Your device will show the raw text or offer a web search."
	unknownAwareness   = "This is not a standard scannable action. It could be a simple message, a unique code, or a private key. Be cautious if you don't recognize it."
)
